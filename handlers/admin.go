// handlers/admin.go — admin console routes
package handlers

import (
	"tricky-turns-backend/middleware"
	"tricky-turns-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App, admins *services.AdminService, console *services.AdminConsoleService) {
	app.Post("/admin/login", admins.LoginHandler)

	// Legacy wipe path kept for the game client's ops tooling; same admin
	// gate as the /admin-prefixed route.
	app.Delete("/leaderboard/all", middleware.AdminAuthMiddleware(admins), console.WipeLeaderboard)

	// 🔒 Everything else requires a live admin session
	secured := app.Group("/admin", middleware.AdminAuthMiddleware(admins))

	secured.Post("/logout", admins.LogoutHandler)
	secured.Get("/me", admins.Me)

	// Users & admins
	secured.Get("/users", console.ListUsers)
	secured.Post("/users/ban", console.BanUser)
	secured.Post("/users/unban", console.UnbanUser)
	secured.Get("/admins", console.ListAdmins)

	// Game modes
	secured.Get("/game_modes", console.ListModes)
	secured.Post("/game_modes", console.CreateMode)
	secured.Put("/game_modes/:id", console.UpdateMode)
	secured.Delete("/game_modes/:id", console.DeleteMode)

	// Leaderboards & telemetry
	secured.Get("/leaderboards", console.ListLeaderboards)
	secured.Get("/score_history", console.ListScoreHistory)
	secured.Get("/game_sessions", console.ListGameSessions)
	secured.Delete("/leaderboard/all", console.WipeLeaderboard)

	// Shop & purchases
	secured.Get("/shop/items", console.ListShopItems)
	secured.Post("/shop/items", console.CreateShopItem)
	secured.Put("/shop/items/:id", console.UpdateShopItem)
	secured.Delete("/shop/items/:id", console.DeleteShopItem)
	secured.Get("/purchases", console.ListPurchases)

	// Contests
	secured.Get("/contests", console.ListContests)
	secured.Post("/contests", console.CreateContest)
	secured.Put("/contests/:id", console.UpdateContest)
	secured.Delete("/contests/:id", console.DeleteContest)
	secured.Get("/contest_entries", console.ListContestEntries)

	// Support
	secured.Get("/support_tickets", console.ListSupportTickets)
	secured.Post("/support_tickets/:id/close", console.CloseSupportTicket)

	// Promo codes
	secured.Get("/promo_codes", console.ListPromoCodes)
	secured.Post("/promo_codes", console.CreatePromoCode)
	secured.Put("/promo_codes/:id", console.UpdatePromoCode)
	secured.Delete("/promo_codes/:id", console.DeletePromoCode)

	// Feature toggles
	secured.Get("/feature_toggles", console.ListFeatureToggles)
	secured.Post("/feature_toggles", console.CreateFeatureToggle)
	secured.Put("/feature_toggles/:id", console.UpdateFeatureToggle)
	secured.Delete("/feature_toggles/:id", console.DeleteFeatureToggle)

	// Audit log
	secured.Get("/audit_log", console.ListAuditLog)
}
