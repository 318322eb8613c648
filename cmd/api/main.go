package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"grocerystore/internal/auth"
	"grocerystore/internal/cart"
	"grocerystore/internal/catalog"
	"grocerystore/internal/checkout"
	"grocerystore/internal/config"
	"grocerystore/internal/db"
	"grocerystore/internal/domain/account"
	"grocerystore/internal/orders"
	"grocerystore/internal/profile"
	"grocerystore/internal/rider"
	"grocerystore/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	pool, err := db.NewPostgres(cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	jwtMgr := auth.NewJWTManager(auth.JWTConfig{
		Issuer:   cfg.JWTIssuer,
		Secret:   cfg.JWTSecret,
		TTLHours: cfg.SessionTTLHours,
	})
	sessions := session.NewRegistry(time.Duration(cfg.SessionTTLHours) * time.Hour)
	flows := checkout.NewFlows()
	// a session's checkout flow dies with the session
	sessions.OnDrop(flows.Discard)

	// Repos
	accountRepo := auth.NewRepo(pool)
	catalogRepo := catalog.NewRepo(pool)
	orderRepo := orders.NewRepo(pool, catalogRepo)
	profileRepo := profile.NewRepo(pool)
	riderRepo := rider.NewRepo(pool)

	// Handlers
	authHandler := auth.NewHandler(auth.Dependencies{
		JWT:      jwtMgr,
		Accounts: accountRepo,
		Sessions: sessions,
	})
	catalogHandler := catalog.NewHandler(catalogRepo)
	cartHandler := cart.NewHandler(catalogRepo)
	checkoutHandler := checkout.NewHandler(flows, orderRepo, accountRepo, cfg.RequirePostalCode)
	orderHandler := orders.NewHandler()
	profileHandler := profile.NewHandler(profileRepo, accountRepo)
	riderHandler := rider.NewHandler(riderRepo)

	r := gin.Default()

	api := r.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// Public catalog routes (no login required)
	api.GET("/categories", catalogHandler.Categories)
	api.GET("/products", catalogHandler.List)
	api.GET("/products/:id", catalogHandler.Get)

	protected := api.Group("/")
	protected.Use(auth.AuthMiddleware(jwtMgr, sessions))
	{
		protected.GET("/me", authHandler.Me)
		protected.POST("/auth/logout", authHandler.Logout)

		// session cart
		protected.GET("/cart", cartHandler.GetMyCart)
		protected.POST("/cart/items", cartHandler.AddItem)
		protected.PATCH("/cart/items", cartHandler.UpdateQty)
		protected.DELETE("/cart/items", cartHandler.RemoveItem)
		protected.DELETE("/cart", cartHandler.Clear)

		// checkout flow
		protected.GET("/checkout", checkoutHandler.State)
		protected.POST("/checkout/shipping", checkoutHandler.SubmitShipping)
		protected.POST("/checkout/back", checkoutHandler.Back)
		protected.POST("/checkout/payment", checkoutHandler.SubmitPayment)
		protected.GET("/order-confirmation", orderHandler.Confirmation)

		// profile editor
		protected.GET("/profile", profileHandler.Get)
		protected.PATCH("/profile/:field", profileHandler.UpdateField)

		adminOnly := protected.Group("/admin")
		adminOnly.Use(auth.RequireRole(account.RoleAdmin))
		{
			adminOnly.POST("/products", catalogHandler.AdminCreate)
			adminOnly.PATCH("/products/:id", catalogHandler.AdminUpdate)
			adminOnly.DELETE("/products/:id", catalogHandler.AdminDelete)
			adminOnly.POST("/products/:id/reorder", catalogHandler.AdminReorder)
		}

		riderOnly := protected.Group("/rider")
		riderOnly.Use(auth.RequireRole(account.RoleRider))
		{
			riderOnly.GET("/orders", riderHandler.ListOrders)
			riderOnly.PATCH("/orders/:id/status", riderHandler.UpdateStatus)
		}
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
