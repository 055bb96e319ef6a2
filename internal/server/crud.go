package server

import (
	"net/http"
	"strconv"

	"github.com/bsan5566/food-waste/pkg/types"

	"github.com/alexedwards/flow"
)

func idFromRequest(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(flow.Param(r.Context(), "id"))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// ---- Providers ----

func (s *Service) handleListProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := s.providerRepo.Providers(r.Context())
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusOK, providers)
}

func (s *Service) handleGetProvider(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		s.badRequest(w, "invalid provider id")
		return
	}

	provider, err := s.providerRepo.Provider(r.Context(), id)
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusOK, provider)
}

func (s *Service) handleCreateProvider(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, "invalid form data")
		return
	}

	var provider types.Provider
	if err := decoder.Decode(&provider, r.PostForm); err != nil {
		s.badRequest(w, "invalid provider fields")
		return
	}

	if err := s.providerRepo.CreateProvider(r.Context(), &provider); err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusCreated, provider)
}

func (s *Service) handleUpdateProvider(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		s.badRequest(w, "invalid provider id")
		return
	}

	if err := r.ParseForm(); err != nil {
		s.badRequest(w, "invalid form data")
		return
	}

	var provider types.Provider
	if err := decoder.Decode(&provider, r.PostForm); err != nil {
		s.badRequest(w, "invalid provider fields")
		return
	}

	if err := s.providerRepo.UpdateProvider(r.Context(), id, &provider); err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusOK, provider)
}

func (s *Service) handleDeleteProvider(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		s.badRequest(w, "invalid provider id")
		return
	}

	if err := s.providerRepo.DeleteProvider(r.Context(), id); err != nil {
		s.renderError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Receivers ----

func (s *Service) handleListReceivers(w http.ResponseWriter, r *http.Request) {
	receivers, err := s.receiverRepo.Receivers(r.Context())
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusOK, receivers)
}

func (s *Service) handleGetReceiver(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		s.badRequest(w, "invalid receiver id")
		return
	}

	receiver, err := s.receiverRepo.Receiver(r.Context(), id)
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusOK, receiver)
}

func (s *Service) handleCreateReceiver(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, "invalid form data")
		return
	}

	var receiver types.Receiver
	if err := decoder.Decode(&receiver, r.PostForm); err != nil {
		s.badRequest(w, "invalid receiver fields")
		return
	}

	if err := s.receiverRepo.CreateReceiver(r.Context(), &receiver); err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusCreated, receiver)
}

func (s *Service) handleUpdateReceiver(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		s.badRequest(w, "invalid receiver id")
		return
	}

	if err := r.ParseForm(); err != nil {
		s.badRequest(w, "invalid form data")
		return
	}

	var receiver types.Receiver
	if err := decoder.Decode(&receiver, r.PostForm); err != nil {
		s.badRequest(w, "invalid receiver fields")
		return
	}

	if err := s.receiverRepo.UpdateReceiver(r.Context(), id, &receiver); err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusOK, receiver)
}

func (s *Service) handleDeleteReceiver(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		s.badRequest(w, "invalid receiver id")
		return
	}

	if err := s.receiverRepo.DeleteReceiver(r.Context(), id); err != nil {
		s.renderError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Food listings ----

func (s *Service) handleListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := s.listingRepo.Listings(r.Context())
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusOK, listings)
}

func (s *Service) handleGetListing(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		s.badRequest(w, "invalid food id")
		return
	}

	listing, err := s.listingRepo.Listing(r.Context(), id)
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusOK, listing)
}

func (s *Service) decodeListing(w http.ResponseWriter, r *http.Request) (*types.FoodListing, bool) {
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, "invalid form data")
		return nil, false
	}

	var listing types.FoodListing
	if err := decoder.Decode(&listing, r.PostForm); err != nil {
		s.badRequest(w, "invalid listing fields")
		return nil, false
	}

	if listing.Quantity != nil && *listing.Quantity < 0 {
		s.badRequest(w, "quantity must not be negative")
		return nil, false
	}

	return &listing, true
}

func (s *Service) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	listing, ok := s.decodeListing(w, r)
	if !ok {
		return
	}

	if err := s.listingRepo.CreateListing(r.Context(), listing); err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusCreated, listing)
}

func (s *Service) handleUpdateListing(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		s.badRequest(w, "invalid food id")
		return
	}

	listing, ok := s.decodeListing(w, r)
	if !ok {
		return
	}

	if err := s.listingRepo.UpdateListing(r.Context(), id, listing); err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusOK, listing)
}

func (s *Service) handleDeleteListing(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		s.badRequest(w, "invalid food id")
		return
	}

	if err := s.listingRepo.DeleteListing(r.Context(), id); err != nil {
		s.renderError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Claims ----

func (s *Service) handleListClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := s.claimRepo.Claims(r.Context())
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusOK, claims)
}

func (s *Service) handleGetClaim(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		s.badRequest(w, "invalid claim id")
		return
	}

	claim, err := s.claimRepo.Claim(r.Context(), id)
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusOK, claim)
}

func (s *Service) decodeClaim(w http.ResponseWriter, r *http.Request) (*types.Claim, bool) {
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, "invalid form data")
		return nil, false
	}

	var claim types.Claim
	if err := decoder.Decode(&claim, r.PostForm); err != nil {
		s.badRequest(w, "invalid claim fields")
		return nil, false
	}

	if claim.Status != "" && !types.ValidClaimStatus(claim.Status) {
		s.badRequest(w, "status must be Pending, Completed or Cancelled")
		return nil, false
	}

	return &claim, true
}

func (s *Service) handleCreateClaim(w http.ResponseWriter, r *http.Request) {
	claim, ok := s.decodeClaim(w, r)
	if !ok {
		return
	}

	if err := s.claimRepo.CreateClaim(r.Context(), claim); err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusCreated, claim)
}

func (s *Service) handleUpdateClaim(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		s.badRequest(w, "invalid claim id")
		return
	}

	claim, ok := s.decodeClaim(w, r)
	if !ok {
		return
	}

	if err := s.claimRepo.UpdateClaim(r.Context(), id, claim); err != nil {
		s.renderError(w, err)
		return
	}
	s.renderJSON(w, http.StatusOK, claim)
}

func (s *Service) handleDeleteClaim(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		s.badRequest(w, "invalid claim id")
		return
	}

	if err := s.claimRepo.DeleteClaim(r.Context(), id); err != nil {
		s.renderError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
