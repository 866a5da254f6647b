package handler

import "github.com/go-chi/chi/v5"

// RegisterGameRoutes mounts the game and save endpoints on r
func RegisterGameRoutes(r chi.Router, g GameService, saves SaveService) {
	r.Get("/state", HandleGetState(g))

	r.Route("/grids/{grid}", func(r chi.Router) {
		r.Post("/plant", HandlePlant(g))
		r.Post("/harvest", HandleHarvest(g))
		r.Post("/remove", HandleRemove(g))
		r.Post("/unlock", HandleUnlockTile(g))
	})

	r.Post("/orchard/unlock", HandleUnlockOrchard(g))
	r.Post("/saplings/unlock", HandleUnlockSapling(g))
	r.Post("/select", HandleSelect(g))

	r.Post("/load", HandleLoad(saves))
	r.Route("/save", func(r chi.Router) {
		r.Post("/", HandleSave(saves))
		r.Get("/export", HandleExport(saves))
		r.Post("/import", HandleImport(saves))
		r.Get("/status", HandleSaveStatus(saves))
		r.Post("/recover", HandleRecover(saves))
	})
}
