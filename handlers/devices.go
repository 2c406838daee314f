// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/danielhkuo/ridepolls/cliparse"
	"github.com/danielhkuo/ridepolls/device"
	"github.com/danielhkuo/ridepolls/logging"
	"github.com/danielhkuo/ridepolls/middleware"
	"github.com/danielhkuo/ridepolls/models"
)

type DeviceHandler struct {
	cfg    cliparse.Config
	logger *zap.Logger
}

func NewDeviceHandler(cfg cliparse.Config, logger *zap.Logger) *DeviceHandler {
	return &DeviceHandler{cfg: cfg, logger: logging.OrNop(logger)}
}

// GetMe handles GET /devices/me
// Returns the caller's device token, issuing the cookie on first contact
func (h *DeviceHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	token := deviceProvider(w, r, h.cfg, h.logger).Token()
	middleware.JSONResponse(w, http.StatusOK, models.DeviceResponse{DeviceToken: token})
}

// deviceProvider scopes device identity to one request: X-Device-UUID from
// native apps, else the signed cookie, else a new token set as a cookie
func deviceProvider(w http.ResponseWriter, r *http.Request, cfg cliparse.Config, logger *zap.Logger) *device.Provider {
	storage := device.NewCookieStorage(w, r, cfg.DeviceCookieSecret, cfg.DeviceCookieSecure)
	return device.NewProvider(storage, logger)
}
