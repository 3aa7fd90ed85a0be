package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"vivero/database"
	"vivero/pkg/logger"
)

var appStart = time.Now()

type HealthCtrl struct {
	db *gorm.DB
}

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db} }

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

// Health pings the database and reports row counts per table.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := sub{OK: true}
	if h.db == nil {
		db = sub{Err: "gorm db is nil"}
	} else if sqlDB, err := h.db.DB(); err != nil {
		db = sub{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		db = sub{Err: "ping: " + err.Error()}
	}

	var counts map[string]int64
	if db.OK {
		var err error
		counts, err = database.Counts(ctx, h.db)
		if err != nil {
			db = sub{Err: "count: " + err.Error()}
		}
	}

	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
		logger.L().Warn("health.degraded", "err", db.Err)
	}

	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     map[string]any{"database": db},
		"tables":     counts,
		"time":       time.Now().UTC().Format(time.RFC3339),
	})
}
