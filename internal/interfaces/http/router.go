package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danmaket/marketplace-api/internal/application/admin"
	"github.com/danmaket/marketplace-api/internal/application/auth"
	apporder "github.com/danmaket/marketplace-api/internal/application/order"
	"github.com/danmaket/marketplace-api/internal/application/usecase"
	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/infrastructure/realtime"
	"github.com/danmaket/marketplace-api/pkg/logger"
)

// RouterDeps dépendances pour le router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CatalogUC      *usecase.CatalogUseCase
	CartUC         *usecase.CartUseCase
	ProductUC      *usecase.ProductUseCase
	ReviewUC       *usecase.ReviewUseCase
	PromoUC        *usecase.PromoUseCase
	NotificationUC *usecase.NotificationUseCase
	CheckoutUC     *apporder.CheckoutUseCase
	OrderUC        *apporder.OrderUseCase
	ReceiptUC      *apporder.ReceiptUseCase
	AdminUC        *admin.AdminUseCase
	Feed           *realtime.Feed
	Log            *logger.Logger
	JWTSecret      string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Vitrine (public)
	catalogHandler := NewCatalogHandler(deps.CatalogUC, deps.PromoUC, deps.ReviewUC)
	api.Get("/categories", catalogHandler.Categories)
	api.Get("/categories/:slug/produits", catalogHandler.ProductsByCategory)
	api.Get("/produits", catalogHandler.Products)
	api.Get("/produits/:slug", catalogHandler.ProductBySlug)
	api.Get("/produits/:id/avis", catalogHandler.ProductReviews)
	api.Get("/recherche", catalogHandler.Search)
	api.Get("/vedettes", catalogHandler.Featured)
	api.Get("/banners", catalogHandler.Banners)

	// Flux temps réel (public, tables de la vitrine uniquement)
	if deps.Feed != nil {
		eventsHandler := NewEventsHandler(deps.Feed, deps.Log)
		api.Get("/events/:table", eventsHandler.Stream)
	}

	// Routes protégées (Bearer Token requis)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Profil
	protected.Get("/profile", authHandler.Profile)
	protected.Put("/profile", authHandler.UpdateProfile)
	protected.Put("/profile/password", authHandler.ChangePassword)

	// Avis (création réservée aux connectés)
	protected.Post("/produits/:id/avis", catalogHandler.CreateReview)

	// Panier
	panier := protected.Group("/panier")
	cartHandler := NewCartHandler(deps.CartUC)
	panier.Get("/", cartHandler.Get)
	panier.Post("/", cartHandler.Add)
	panier.Put("/:id", cartHandler.Update)
	panier.Delete("/vider", cartHandler.Clear)
	panier.Delete("/:id", cartHandler.Remove)

	// Commandes côté client
	commandes := protected.Group("/commandes")
	orderHandler := NewOrderHandler(deps.CheckoutUC, deps.OrderUC, deps.ReceiptUC)
	commandes.Post("/", orderHandler.Checkout)
	commandes.Get("/", orderHandler.List)
	commandes.Get("/:id", orderHandler.Get)
	commandes.Get("/:id/recu", orderHandler.Receipt)
	commandes.Post("/:id/annuler", orderHandler.Cancel)
	commandes.Delete("/:id", orderHandler.Delete)

	// Notifications
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/:id/lu", notificationHandler.MarkRead)

	// Espace vendeur (un admin peut agir en vendeur)
	vendeur := protected.Group("/vendeur", RequireRole(entity.RoleVendeur, entity.RoleAdmin))
	productHandler := NewProductHandler(deps.ProductUC)
	vendeur.Get("/produits", productHandler.List)
	vendeur.Post("/produits", productHandler.Publish)
	vendeur.Put("/produits/:id", productHandler.Update)
	vendeur.Put("/produits/:id/statut", productHandler.SetStatus)
	vendeur.Delete("/produits/:id", productHandler.Delete)
	vendeur.Post("/produits/images", productHandler.UploadImage)
	vendeur.Get("/commandes", orderHandler.VendorList)
	vendeur.Put("/commandes/:id/statut", orderHandler.VendorUpdateStatus)
	vendeur.Delete("/commandes/:id", orderHandler.VendorDelete)
	vendeur.Get("/revenus", orderHandler.VendorRevenue)

	// Espace admin
	adminGroup := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	adminHandler := NewAdminHandler(deps.AdminUC, deps.PromoUC)
	adminGroup.Get("/utilisateurs", adminHandler.ListUsers)
	adminGroup.Put("/utilisateurs/:id/statut", adminHandler.SetUserStatus)
	adminGroup.Get("/vendeurs/en-attente", adminHandler.PendingSellers)
	adminGroup.Post("/vendeurs/:id/valider", adminHandler.ValidateSeller)
	adminGroup.Put("/produits/:id/statut", adminHandler.SetProductStatus)
	adminGroup.Get("/commandes", adminHandler.ListOrders)
	adminGroup.Put("/commandes/:id/statut", orderHandler.AdminUpdateStatus)
	adminGroup.Get("/recherche", adminHandler.Search)
	adminGroup.Get("/stats", adminHandler.Stats)
	adminGroup.Get("/journal", adminHandler.ActivityLogs)
	adminGroup.Post("/emails", adminHandler.SendEmail)
	adminGroup.Post("/vedettes", adminHandler.AddFeatured)
	adminGroup.Delete("/vedettes/:id", adminHandler.RemoveFeatured)
	adminGroup.Put("/vedettes/:id/deplacer", adminHandler.MoveFeatured)
	adminGroup.Get("/banners", adminHandler.ListBanners)
	adminGroup.Post("/banners", adminHandler.CreateBanner)
	adminGroup.Delete("/banners/:id", adminHandler.DeleteBanner)
}
