// handlers/player.go — player-facing routes
package handlers

import (
	"tricky-turns-backend/middleware"
	"tricky-turns-backend/services"

	"github.com/gofiber/fiber/v2"
)

// PlayerServices bundles everything the player surface needs.
type PlayerServices struct {
	Catalog     *services.CatalogService
	Leaderboard *services.LeaderboardService
	Sessions    *services.SessionService
	Shop        *services.ShopService
	Contests    *services.ContestService
	Support     *services.SupportService
	Promo       *services.PromoService
}

func SetupPlayerRoutes(app *fiber.App, verifier services.TokenVerifier, users *services.UserService, svc PlayerServices) {
	// 🔓 Public routes — no identity required
	app.Get("/modes", svc.Catalog.ListModes)
	app.Get("/feature_toggles", svc.Catalog.ListFeatureToggles)
	app.Get("/leaderboard", svc.Leaderboard.GetLeaderboard)
	app.Get("/shop/items", svc.Shop.ListItems)
	app.Get("/contests/active", svc.Contests.ListActive)
	app.Get("/contests/:id/leaderboard", svc.Contests.ContestLeaderboard)

	// 🔐 Authenticated routes — bearer token verified per request
	secured := app.Group("/", middleware.PlayerAuthMiddleware(verifier, users))

	secured.Get("/leaderboard/me", svc.Leaderboard.GetMyScore)
	secured.Get("/leaderboard/rank", svc.Leaderboard.GetMyRank)
	secured.Post("/score/submit", svc.Leaderboard.SubmitScoreHandler)
	secured.Get("/score/history", svc.Leaderboard.GetMyHistory)

	secured.Post("/session/start", svc.Sessions.StartSession)
	secured.Post("/session/end", svc.Sessions.EndSession)

	secured.Post("/shop/buy", svc.Shop.BuyItem)
	secured.Get("/purchases", svc.Shop.ListMyPurchases)

	secured.Post("/contests/:id/enter", svc.Contests.EnterContest)

	secured.Get("/support/tickets", svc.Support.ListMyTickets)
	secured.Post("/support/ticket", svc.Support.SubmitTicket)

	secured.Post("/promo/redeem", svc.Promo.RedeemCode)

	// Token check endpoint used by the client at startup
	secured.Get("/pi-auth/verify", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":  "Pi token is valid",
			"username": c.Locals("username"),
			"owner_id": c.Locals("owner_id"),
		})
	})
}
