package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/event-marketplace/internal/audit"
	"github.com/BruksfildServices01/event-marketplace/internal/config"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/messaging"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/handlers"
	"github.com/BruksfildServices01/event-marketplace/internal/middleware"
	"github.com/BruksfildServices01/event-marketplace/internal/timezone"
	ucBooking "github.com/BruksfildServices01/event-marketplace/internal/usecase/booking"
	ucEarnings "github.com/BruksfildServices01/event-marketplace/internal/usecase/earnings"
	ucEvent "github.com/BruksfildServices01/event-marketplace/internal/usecase/event"
	ucNotification "github.com/BruksfildServices01/event-marketplace/internal/usecase/notification"
	ucRating "github.com/BruksfildServices01/event-marketplace/internal/usecase/rating"
	ucReview "github.com/BruksfildServices01/event-marketplace/internal/usecase/review"
)

// Deps are the process singletons the routes are built from. DB is nil
// when the service runs on the in-memory store.
type Deps struct {
	Config        *config.Config
	Repo          store.Repository
	DB            *gorm.DB
	Cache         ucNotification.UnreadCache
	Conversations messaging.Conversations
	Publisher     ucBooking.Publisher
	Audit         *audit.Dispatcher
	Clock         timezone.Clock
	Log           *zap.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// USE CASES
	// ======================================================
	notifier := ucNotification.NewNotifier(d.Repo, d.Cache, d.Conversations, d.Clock, d.Log)

	createBookingUC := ucBooking.NewCreateBooking(d.Repo, notifier, d.Audit, d.Publisher, d.Clock, d.Log)
	transitionBookingUC := ucBooking.NewTransitionBooking(d.Repo, notifier, d.Audit, d.Publisher, d.Clock, d.Log)
	finalAmountUC := ucBooking.NewSetFinalAmount(d.Repo, d.Audit, d.Log)

	createEventUC := ucEvent.NewCreateEvent(d.Repo, d.Audit, d.Log)
	editEventUC := ucEvent.NewEditEvent(d.Repo, notifier, d.Audit, d.Log)
	deleteEventUC := ucEvent.NewDeleteEvent(d.Repo, d.Audit, d.Log)
	detachUC := ucEvent.NewDetachOrganizer(d.Repo, notifier, d.Audit, d.Clock, d.Log)
	eventStatusUC := ucEvent.NewUpdateEventStatus(d.Repo, transitionBookingUC, d.Audit, d.Log)

	recomputeUC := ucRating.NewRecomputeRating(d.Repo, d.Log)
	recomputeAllUC := ucRating.NewRecomputeAll(d.Repo, recomputeUC, d.Log)

	createReviewUC := ucReview.NewCreateReview(d.Repo, recomputeUC, d.Audit, d.Log)
	editReviewUC := ucReview.NewEditReview(d.Repo, recomputeUC, d.Audit, d.Clock, d.Log)
	deleteReviewUC := ucReview.NewDeleteReview(d.Repo, recomputeUC, d.Audit, d.Log)

	earningsUC := ucEarnings.NewGetEarnings(d.Repo, d.Clock, d.Log)
	payoutUC := ucEarnings.NewRequestPayout(d.Repo, notifier, d.Audit, d.Clock, d.Config.PayoutMinimum, d.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler(d.Repo)
	bookingHandler := handlers.NewBookingHandler(d.Repo, createBookingUC, transitionBookingUC, finalAmountUC)
	eventHandler := handlers.NewEventHandler(createEventUC, editEventUC, deleteEventUC, detachUC, eventStatusUC)
	reviewHandler := handlers.NewReviewHandler(createReviewUC, editReviewUC, deleteReviewUC)
	ratingHandler := handlers.NewRatingHandler(d.Repo, recomputeAllUC)
	notificationHandler := handlers.NewNotificationHandler(notifier)
	earningsHandler := handlers.NewEarningsHandler(earningsUC, payoutUC)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/providers/:type/:id/rating", ratingHandler.Get)

		secured := api.Group("/")
		secured.Use(middleware.Auth(d.Config.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/bookings", bookingHandler.Create)
			secured.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)
			secured.PATCH("/bookings/:id/final-amount", bookingHandler.SetFinalAmount)

			// ------------------------------
			// EVENTS
			// ------------------------------
			secured.POST("/events", eventHandler.Create)
			secured.PUT("/events/:id", eventHandler.Edit)
			secured.DELETE("/events/:id", eventHandler.Delete)
			secured.POST("/events/:id/detach", eventHandler.Detach)
			secured.PATCH("/events/:id/status", eventHandler.UpdateStatus)

			// ------------------------------
			// REVIEWS
			// ------------------------------
			secured.POST("/reviews", reviewHandler.Create)
			secured.PUT("/reviews/:id", reviewHandler.Edit)
			secured.DELETE("/reviews/:id", middleware.RequireRole(actor.RoleAdmin), reviewHandler.Delete)

			// ------------------------------
			// NOTIFICATIONS
			// ------------------------------
			secured.GET("/notifications", notificationHandler.List)
			secured.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			secured.PATCH("/notifications/read-all", notificationHandler.MarkAllRead)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
			secured.DELETE("/notifications/:id", notificationHandler.Delete)

			// ------------------------------
			// EARNINGS
			// ------------------------------
			providers := secured.Group("/")
			providers.Use(middleware.RequireRole(actor.RoleOrganizer, actor.RoleSupplier))
			{
				providers.GET("/earnings", earningsHandler.Get)
				providers.POST("/payouts", earningsHandler.RequestPayout)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(actor.RoleAdmin))
			{
				admin.POST("/ratings/recompute", ratingHandler.RecomputeAll)

				if d.DB != nil {
					admin.GET("/audit-logs", handlers.NewAuditLogsHandler(d.DB).List)
				}
			}
		}
	}
}
