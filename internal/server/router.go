package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	archivectrl "github.com/sind14/Gastronomy-Service/internal/archive/controller"
	"github.com/sind14/Gastronomy-Service/internal/auth"
	catalogctrl "github.com/sind14/Gastronomy-Service/internal/catalog/controller"
	orderctrl "github.com/sind14/Gastronomy-Service/internal/order/controller"
	partyctrl "github.com/sind14/Gastronomy-Service/internal/party/controller"
)

// NewRouter mounts the API. Auth endpoints are open; everything else
// requires a valid access token.
func NewRouter(
	catalogCtrl *catalogctrl.CatalogController,
	partyCtrl *partyctrl.PartyController,
	orderCtrl *orderctrl.OrderController,
	archiveCtrl *archivectrl.ArchiveController,
	authModule *auth.Module,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authModule.Controller.Register)
			r.Post("/login", authModule.Controller.Login)
			r.Post("/refresh", authModule.Controller.Refresh)
		})

		r.Group(func(r chi.Router) {
			r.Use(authModule.Middleware.RequireAuth)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", authModule.Controller.ListUsers)
				r.Get("/{id}", authModule.Controller.GetUser)
				r.Put("/{id}", authModule.Controller.UpdateUser)
				r.Delete("/{id}", authModule.Controller.DeleteUser)
			})

			r.Route("/realization-types", func(r chi.Router) {
				r.Post("/", catalogCtrl.CreateRealizationType)
				r.Get("/", catalogCtrl.ListRealizationTypes)
				r.Get("/{id}", catalogCtrl.GetRealizationType)
				r.Put("/{id}", catalogCtrl.UpdateRealizationType)
				r.Delete("/{id}", catalogCtrl.DeleteRealizationType)
			})

			r.Route("/dishes", func(r chi.Router) {
				r.Post("/", catalogCtrl.CreateDish)
				r.Get("/", catalogCtrl.ListDishes)
				r.Get("/{id}", catalogCtrl.GetDish)
				r.Put("/{id}", catalogCtrl.UpdateDish)
				r.Delete("/{id}", catalogCtrl.DeleteDish)
			})

			r.Route("/inventories", func(r chi.Router) {
				r.Post("/", catalogCtrl.CreateInventory)
				r.Get("/", catalogCtrl.ListInventories)
				r.Get("/{id}", catalogCtrl.GetInventory)
				r.Put("/{id}", catalogCtrl.UpdateInventory)
				r.Delete("/{id}", catalogCtrl.DeleteInventory)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", catalogCtrl.CreateCategory)
				r.Get("/", catalogCtrl.ListCategories)
				r.Get("/{id}", catalogCtrl.GetCategory)
				r.Put("/{id}", catalogCtrl.UpdateCategory)
				r.Delete("/{id}", catalogCtrl.DeleteCategory)
			})

			r.Route("/menus", func(r chi.Router) {
				r.Post("/", catalogCtrl.CreateMenu)
				r.Get("/", catalogCtrl.ListMenus)
				r.Get("/{id}", catalogCtrl.GetMenu)
				r.Put("/{id}", catalogCtrl.UpdateMenu)
				r.Delete("/{id}", catalogCtrl.DeleteMenu)
			})

			r.Route("/addresses", func(r chi.Router) {
				r.Post("/", partyCtrl.CreateAddress)
				r.Get("/", partyCtrl.ListAddresses)
				r.Get("/{id}", partyCtrl.GetAddress)
				r.Put("/{id}", partyCtrl.UpdateAddress)
				r.Delete("/{id}", partyCtrl.DeleteAddress)
			})

			r.Route("/companies", func(r chi.Router) {
				r.Post("/", partyCtrl.CreateCompany)
				r.Get("/", partyCtrl.ListCompanies)
				r.Get("/{id}", partyCtrl.GetCompany)
				r.Put("/{id}", partyCtrl.UpdateCompany)
				r.Delete("/{id}", partyCtrl.DeleteCompany)
			})

			r.Route("/clients", func(r chi.Router) {
				r.Post("/", partyCtrl.CreateClient)
				r.Get("/", partyCtrl.ListClients)
				r.Get("/{id}", partyCtrl.GetClient)
				r.Put("/{id}", partyCtrl.UpdateClient)
				r.Delete("/{id}", partyCtrl.DeleteClient)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", orderCtrl.Create)
				r.Get("/", orderCtrl.List)
				r.Get("/{id}", orderCtrl.Get)
				r.Put("/{id}", orderCtrl.Update)
				r.Delete("/{id}", orderCtrl.Delete)
				r.Put("/{id}/dishes", orderCtrl.SetDishes)
				r.Get("/{id}/total-price", orderCtrl.TotalPrice)
				r.Post("/{id}/complete", orderCtrl.Complete)
				r.Post("/{id}/cancel", orderCtrl.Cancel)
			})

			r.Route("/archived-orders", func(r chi.Router) {
				r.Get("/", archiveCtrl.ListOrders)
				r.Get("/{id}", archiveCtrl.GetOrder)
			})

			r.Route("/archived-dishes", func(r chi.Router) {
				r.Get("/", archiveCtrl.ListDishes)
				r.Get("/{id}", archiveCtrl.GetDish)
			})

			r.Route("/archived-inventories", func(r chi.Router) {
				r.Get("/", archiveCtrl.ListInventories)
				r.Get("/{id}", archiveCtrl.GetInventory)
			})
		})
	})

	return r
}
