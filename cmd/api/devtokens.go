package main

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/event-marketplace/internal/infra/memory"
)

// logDemoTokens prints a bearer token per seeded account so the in-memory
// mode can be driven with curl.
func logDemoTokens(log *zap.Logger, secret string, demo memory.Demo) {
	for _, a := range []actor.Actor{
		demo.ClientActor(),
		demo.OrganizerActor(),
		demo.SupplierActor(),
		demo.AdminActor(),
	} {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  a.UserID,
			"role": string(a.Role),
			"exp":  time.Now().Add(24 * time.Hour).Unix(),
		}).SignedString([]byte(secret))
		if err != nil {
			log.Warn("demo token signing failed", zap.Error(err))
			return
		}
		log.Info("demo account",
			zap.String("role", string(a.Role)),
			zap.Uint("user_id", a.UserID),
			zap.String("token", token),
		)
	}
}
