package handler

import (
	"context"
	"net/http"

	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/farm"
	"github.com/osse101/idlefarm/internal/game"
)

// GameService is the part of *game.Game the HTTP layer drives
type GameService interface {
	View() game.View
	Plant(ctx context.Context, kind domain.GridKind, index int, speciesID string) error
	PlantSelected(ctx context.Context, kind domain.GridKind, index int) error
	Harvest(ctx context.Context, kind domain.GridKind, index int) (farm.HarvestOutcome, error)
	Remove(ctx context.Context, kind domain.GridKind, index int) error
	UnlockTile(ctx context.Context, kind domain.GridKind) (int64, error)
	UnlockOrchard(ctx context.Context) error
	UnlockSapling(ctx context.Context, treeID string) error
	SelectCrop(speciesID string) error
	SelectTree(speciesID string) error
}

// TileRequest addresses one tile of the grid in the URL
type TileRequest struct {
	Index *int `json:"index" validate:"required,min=0"`
}

// PlantRequest plants speciesId, or the current selection when it is empty
type PlantRequest struct {
	Index     *int   `json:"index" validate:"required,min=0"`
	SpeciesID string `json:"speciesId" validate:"species"`
}

// SaplingRequest buys a tree species
type SaplingRequest struct {
	SpeciesID string `json:"speciesId" validate:"required,species"`
}

// SelectRequest changes the species planted by a plain tile click
type SelectRequest struct {
	Grid      string `json:"grid" validate:"required,grid"`
	SpeciesID string `json:"speciesId" validate:"required,species"`
}

// HarvestResponse reports what a harvest paid and the resulting state
type HarvestResponse struct {
	Grid      domain.GridKind `json:"grid"`
	TileIndex int             `json:"tileIndex"`
	SpeciesID string          `json:"speciesId"`
	Value     int64           `json:"value"`
	XP        int64           `json:"xp"`
	State     game.View       `json:"state"`
}

// UnlockResponse reports what an unlock cost and the resulting state
type UnlockResponse struct {
	Message string    `json:"message"`
	Cost    int64     `json:"cost"`
	State   game.View `json:"state"`
}

// HandleGetState returns the full render state
// @Summary Get game state
// @Description Wallet, player, both grids with per-tile progress, unlock costs and the species catalog
// @Tags game
// @Produce json
// @Success 200 {object} game.View
// @Router /state [get]
func HandleGetState(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, svc.View())
	}
}

// HandlePlant plants on /grids/{grid}/plant
// @Summary Plant a tile
// @Description Plants speciesId, or the selected species when it is empty, on an unlocked empty tile
// @Tags game
// @Accept json
// @Produce json
// @Param grid path string true "Grid kind" Enums(farm, orchard)
// @Param request body PlantRequest true "Tile and species"
// @Success 200 {object} DataResponse "Planted"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 403 {object} ErrorResponse "Tile, species or orchard locked"
// @Failure 409 {object} ErrorResponse "Tile occupied, not ready or already unlocked"
// @Router /grids/{grid}/plant [post]
func HandlePlant(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := gridParam(w, r)
		if !ok {
			return
		}
		var req PlantRequest
		if err := DecodeAndValidateRequest(r, w, &req, "plant"); err != nil {
			return
		}

		var err error
		if req.SpeciesID == "" {
			err = svc.PlantSelected(r.Context(), kind, *req.Index)
		} else {
			err = svc.Plant(r.Context(), kind, *req.Index, req.SpeciesID)
		}
		if err != nil {
			respondServiceError(w, r, "plant", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: MsgPlanted, Data: svc.View()})
	}
}

// HandleHarvest harvests on /grids/{grid}/harvest
// @Summary Harvest a tile
// @Description Collects a ready tile, credits coins and XP. Trees regrow, crops leave the tile empty
// @Tags game
// @Accept json
// @Produce json
// @Param grid path string true "Grid kind" Enums(farm, orchard)
// @Param request body TileRequest true "Tile index"
// @Success 200 {object} HarvestResponse "Harvested"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 403 {object} ErrorResponse "Tile, species or orchard locked"
// @Failure 409 {object} ErrorResponse "Tile occupied, not ready or already unlocked"
// @Router /grids/{grid}/harvest [post]
func HandleHarvest(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := gridParam(w, r)
		if !ok {
			return
		}
		var req TileRequest
		if err := DecodeAndValidateRequest(r, w, &req, "harvest"); err != nil {
			return
		}

		outcome, err := svc.Harvest(r.Context(), kind, *req.Index)
		if err != nil {
			respondServiceError(w, r, "harvest", err)
			return
		}
		respondJSON(w, http.StatusOK, HarvestResponse{
			Grid:      outcome.Grid,
			TileIndex: outcome.TileIndex,
			SpeciesID: outcome.SpeciesID,
			Value:     outcome.Value,
			XP:        outcome.XP,
			State:     svc.View(),
		})
	}
}

// HandleRemove clears a tile on /grids/{grid}/remove
// @Summary Remove a tile's plant
// @Description Clears an unlocked tile in any state without a reward
// @Tags game
// @Accept json
// @Produce json
// @Param grid path string true "Grid kind" Enums(farm, orchard)
// @Param request body TileRequest true "Tile index"
// @Success 200 {object} DataResponse "Removed"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 403 {object} ErrorResponse "Tile, species or orchard locked"
// @Router /grids/{grid}/remove [post]
func HandleRemove(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := gridParam(w, r)
		if !ok {
			return
		}
		var req TileRequest
		if err := DecodeAndValidateRequest(r, w, &req, "remove"); err != nil {
			return
		}

		if err := svc.Remove(r.Context(), kind, *req.Index); err != nil {
			respondServiceError(w, r, "remove", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: MsgRemoved, Data: svc.View()})
	}
}

// HandleUnlockTile buys the next tile on /grids/{grid}/unlock
// @Summary Unlock the next tile
// @Description Debits the unlock cost and opens the next tile of the grid
// @Tags game
// @Produce json
// @Param grid path string true "Grid kind" Enums(farm, orchard)
// @Success 200 {object} UnlockResponse "Unlocked"
// @Failure 400 {object} ErrorResponse "Not enough coins"
// @Failure 403 {object} ErrorResponse "Tile, species or orchard locked"
// @Failure 409 {object} ErrorResponse "Grid full"
// @Router /grids/{grid}/unlock [post]
func HandleUnlockTile(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := gridParam(w, r)
		if !ok {
			return
		}

		cost, err := svc.UnlockTile(r.Context(), kind)
		if err != nil {
			respondServiceError(w, r, "unlock tile", err)
			return
		}
		respondJSON(w, http.StatusOK, UnlockResponse{Message: MsgUnlocked, Cost: cost, State: svc.View()})
	}
}

// HandleUnlockOrchard opens the orchard
// @Summary Unlock the orchard
// @Description One-time purchase of the tree grid
// @Tags game
// @Produce json
// @Success 200 {object} UnlockResponse "Orchard opened"
// @Failure 400 {object} ErrorResponse "Not enough coins"
// @Failure 409 {object} ErrorResponse "Already unlocked"
// @Router /orchard/unlock [post]
func HandleUnlockOrchard(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cost := svc.View().OrchardUnlockCost
		if err := svc.UnlockOrchard(r.Context()); err != nil {
			respondServiceError(w, r, "unlock orchard", err)
			return
		}
		respondJSON(w, http.StatusOK, UnlockResponse{Message: MsgOrchardReady, Cost: cost, State: svc.View()})
	}
}

// HandleUnlockSapling buys a tree species
// @Summary Buy a sapling
// @Description Unlocks a tree species for planting in the orchard
// @Tags game
// @Accept json
// @Produce json
// @Param request body SaplingRequest true "Tree species"
// @Success 200 {object} UnlockResponse "Sapling bought"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 403 {object} ErrorResponse "Tile, species or orchard locked"
// @Failure 409 {object} ErrorResponse "Already unlocked"
// @Router /saplings/unlock [post]
func HandleUnlockSapling(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SaplingRequest
		if err := DecodeAndValidateRequest(r, w, &req, "unlock sapling"); err != nil {
			return
		}

		var cost int64
		for _, tree := range svc.View().Trees {
			if tree.ID == req.SpeciesID {
				cost = tree.UnlockCost
			}
		}
		if err := svc.UnlockSapling(r.Context(), req.SpeciesID); err != nil {
			respondServiceError(w, r, "unlock sapling", err)
			return
		}
		respondJSON(w, http.StatusOK, UnlockResponse{Message: MsgUnlocked, Cost: cost, State: svc.View()})
	}
}

// HandleSelect sets the selected crop or tree
// @Summary Select a species
// @Description Sets the species planted by a plain tile click
// @Tags game
// @Accept json
// @Produce json
// @Param request body SelectRequest true "Grid and species"
// @Success 200 {object} DataResponse "Selected"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 403 {object} ErrorResponse "Tile, species or orchard locked"
// @Router /select [post]
func HandleSelect(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectRequest
		if err := DecodeAndValidateRequest(r, w, &req, "select"); err != nil {
			return
		}

		var err error
		if domain.GridKind(req.Grid) == domain.GridOrchard {
			err = svc.SelectTree(req.SpeciesID)
		} else {
			err = svc.SelectCrop(req.SpeciesID)
		}
		if err != nil {
			respondServiceError(w, r, "select", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: MsgSelected, Data: svc.View()})
	}
}
