package internal

import (
	"net/http"

	"zhiyu/internal/controllers"
	"zhiyu/internal/providers"
	"zhiyu/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/api/login", http.HandlerFunc(apiController.Login))
	routers.Post("/api/logout", http.HandlerFunc(apiController.Logout))
	routers.Get("/api/me", http.HandlerFunc(apiController.Me))
	routers.Post("/api/profile", http.HandlerFunc(apiController.UpdateProfile))

	routers.Get("/api/records", http.HandlerFunc(apiController.ListRecords))
	routers.Post("/api/records/create", http.HandlerFunc(apiController.CreateRecord))
	routers.Get("/api/records/prefs", http.HandlerFunc(apiController.RecordPrefs))
	routers.Get("/api/records/species-history", http.HandlerFunc(apiController.SpeciesHistory))
	routers.Get("/api/species", http.HandlerFunc(apiController.SpeciesCatalog))

	routers.Get("/api/gear", http.HandlerFunc(apiController.ListGear))
	routers.Post("/api/gear/create", http.HandlerFunc(apiController.CreateGear))
	routers.Post("/api/gear/update", http.HandlerFunc(apiController.UpdateGear))
	routers.Post("/api/gear/delete", http.HandlerFunc(apiController.DeleteGear))

	routers.Get("/api/spots", http.HandlerFunc(apiController.ListSpots))
	routers.Post("/api/spots/create", http.HandlerFunc(apiController.CreateSpot))
	routers.Post("/api/spots/update", http.HandlerFunc(apiController.UpdateSpot))
	routers.Post("/api/spots/delete", http.HandlerFunc(apiController.DeleteSpot))

	routers.Get("/api/messages", http.HandlerFunc(apiController.ListMessages))
	routers.Get("/api/admin/accounts", http.HandlerFunc(apiController.ListAccounts))
	routers.Post("/api/admin/accounts/status", http.HandlerFunc(apiController.SetAccountStatus))
	routers.Post("/api/admin/broadcast", http.HandlerFunc(apiController.Broadcast))
	routers.Get("/api/admin/dashboard", http.HandlerFunc(apiController.Dashboard))

	return routers
}
