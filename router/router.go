package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"vivero/entities"
	"vivero/pkg/middleware"
	"vivero/pkg/validation"

	catalogCtrl "vivero/pkg/catalog/controller"
	catalogCtrlImp "vivero/pkg/catalog/controllerImp"
	catalogSvcImp "vivero/pkg/catalog/serviceImp"

	farmCtrl "vivero/pkg/farm/controller"
	farmCtrlImp "vivero/pkg/farm/controllerImp"
	farmRepoImp "vivero/pkg/farm/repositoryImp"
	farmSvcImp "vivero/pkg/farm/serviceImp"

	healthCtrlImp "vivero/pkg/health/controllerImp"

	laborCtrl "vivero/pkg/labor/controller"
	laborCtrlImp "vivero/pkg/labor/controllerImp"
	laborRepoImp "vivero/pkg/labor/repositoryImp"
	laborSvcImp "vivero/pkg/labor/serviceImp"

	nurseryCtrl "vivero/pkg/nursery/controller"
	nurseryCtrlImp "vivero/pkg/nursery/controllerImp"
	nurseryRepoImp "vivero/pkg/nursery/repositoryImp"
	nurserySvcImp "vivero/pkg/nursery/serviceImp"

	producerCtrl "vivero/pkg/producer/controller"
	producerCtrlImp "vivero/pkg/producer/controllerImp"
	producerRepoImp "vivero/pkg/producer/repositoryImp"
	producerSvcImp "vivero/pkg/producer/serviceImp"
)

type Controllers struct {
	Producer producerCtrl.ProducerController
	Farm     farmCtrl.FarmController
	Nursery  nurseryCtrl.NurseryController
	Labor    laborCtrl.LaborController
	Catalogs map[entities.ProductKind]catalogCtrl.CatalogController
	Health   interface{ Health(echo.Context) error }
}

func New(e *echo.Echo, c Controllers) *echo.Echo {
	e.GET("/health", c.Health.Health)

	e.POST("/producers", c.Producer.Create)
	e.GET("/producers", c.Producer.List)
	e.GET("/producers/:document", c.Producer.Get)
	e.PATCH("/producers/:document", c.Producer.Patch)
	e.DELETE("/producers/:document", c.Producer.Delete)
	e.GET("/producers/:document/farms", c.Producer.Farms)

	e.POST("/farms", c.Farm.Create)
	e.GET("/farms", c.Farm.List)
	e.GET("/farms/:cadastral", c.Farm.Get)
	e.DELETE("/farms/:cadastral", c.Farm.Delete)
	e.GET("/farms/:cadastral/nurseries", c.Farm.Nurseries)

	e.POST("/nurseries", c.Nursery.Create)
	e.GET("/nurseries/:code", c.Nursery.Get)
	e.DELETE("/nurseries/:code", c.Nursery.Delete)
	e.GET("/nurseries/:code/labors", c.Nursery.Labors)

	e.POST("/labors", c.Labor.Create)
	e.GET("/labors/:id", c.Labor.Get)
	e.PATCH("/labors/:id", c.Labor.Patch)
	e.DELETE("/labors/:id", c.Labor.Delete)
	e.POST("/labors/:id/products", c.Labor.AddProduct)
	e.DELETE("/labors/:id/products/:kind/:registry_id", c.Labor.RemoveProduct)

	for kind, ctrl := range c.Catalogs {
		ctrl.Register(e.Group("/catalog/" + string(kind)))
	}
	return e
}

// Build wires repositories, services and controllers over db and returns
// a ready echo instance.
func Build(db *gorm.DB, importMaxBytes int64) *echo.Echo {
	v := validation.New()

	producers := producerSvcImp.NewProducerService(producerRepoImp.New(db), v)
	farms := farmSvcImp.NewFarmService(farmRepoImp.New(db), v)
	nurseries := nurserySvcImp.NewNurseryService(nurseryRepoImp.New(db), v)
	labors := laborSvcImp.NewLaborService(laborRepoImp.New(db), v)
	catalogs := catalogSvcImp.NewServices(db, v)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLog())

	return New(e, Controllers{
		Producer: producerCtrlImp.New(producers),
		Farm:     farmCtrlImp.New(farms, producers),
		Nursery:  nurseryCtrlImp.New(nurseries, farms),
		Labor:    laborCtrlImp.New(labors),
		Catalogs: map[entities.ProductKind]catalogCtrl.CatalogController{
			entities.KindFungus:     catalogCtrlImp.New[entities.FungusControlProduct](catalogs.Fungus, importMaxBytes),
			entities.KindPest:       catalogCtrlImp.New[entities.PestControlProduct](catalogs.Pest, importMaxBytes),
			entities.KindFertilizer: catalogCtrlImp.New[entities.FertilizerControlProduct](catalogs.Fertilizer, importMaxBytes),
		},
		Health: healthCtrlImp.NewHealthCtrl(db),
	})
}
