package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/umputun/inspo/pkg/domain"
	"github.com/umputun/inspo/pkg/store"
)

// feedHandler serves one feed page:
// GET /api/v1/feed?sort=newest&page=0&user=u1&type=&location=&price_min=&price_max=&rating_min=&tag=
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	req, err := parseFeedRequest(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	page, err := s.feed.Fetch(r.Context(), *req)
	if err != nil {
		log.Printf("[ERROR] failed to fetch feed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, page)
}

// itemHandler serves a single denormalized feed item by id
func (s *Server) itemHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, err := s.feed.ItemByID(r.Context(), id)
	if err != nil {
		log.Printf("[ERROR] failed to get item %s: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if item == nil {
		renderError(w, r, fmt.Errorf("item not found"), http.StatusNotFound)
		return
	}

	renderJSON(w, r, http.StatusOK, item)
}

// engagementHandler toggles a collect/like marker:
// POST /api/v1/items/{id}/engagement {"user": "u1", "kind": "collect", "desired": true}
func (s *Server) engagementHandler(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")

	var body struct {
		User    string                `json:"user"`
		Kind    domain.EngagementKind `json:"kind"`
		Desired bool                  `json:"desired"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if body.User == "" {
		renderError(w, r, fmt.Errorf("user is required"), http.StatusBadRequest)
		return
	}
	if !body.Kind.Valid() {
		renderError(w, r, fmt.Errorf("invalid engagement kind"), http.StatusBadRequest)
		return
	}

	engaged, err := s.engagement.Set(r.Context(), itemID, body.User, body.Kind, body.Desired)
	if err != nil {
		log.Printf("[ERROR] failed to set engagement: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]bool{"engaged": engaged})
}

// createItemHandler ingests a new item into the content store
func (s *Server) createItemHandler(w http.ResponseWriter, r *http.Request) {
	var item domain.FeedItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if item.ProviderID == "" || item.Title == "" {
		renderError(w, r, fmt.Errorf("provider_id and title are required"), http.StatusBadRequest)
		return
	}

	if err := s.writer.CreateFeedItem(r.Context(), &item); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			renderError(w, r, err, http.StatusConflict)
			return
		}
		log.Printf("[ERROR] failed to create item: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusCreated, item)
}

// updateItemHandler updates an existing item in the content store
func (s *Server) updateItemHandler(w http.ResponseWriter, r *http.Request) {
	var item domain.FeedItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	item.ID = r.PathValue("id")

	if err := s.writer.UpdateFeedItem(r.Context(), &item); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		log.Printf("[ERROR] failed to update item %s: %v", item.ID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, item)
}

// parseFeedRequest maps query parameters to a feed request
func parseFeedRequest(r *http.Request) (*domain.FeedRequest, error) {
	q := r.URL.Query()

	req := domain.FeedRequest{
		Sort:   domain.SortNewest,
		UserID: q.Get("user"),
	}

	if sort := q.Get("sort"); sort != "" {
		req.Sort = domain.SortMode(sort)
		if !req.Sort.Valid() {
			return nil, fmt.Errorf("invalid sort mode %q", sort)
		}
	}

	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 0 {
			return nil, fmt.Errorf("invalid page %q", pageStr)
		}
		req.Page = page
	}

	req.Filters.ContentType = q.Get("type")
	req.Filters.Location = q.Get("location")
	req.Filters.Tag = q.Get("tag")

	var err error
	if req.Filters.PriceMin, err = parseFloatParam(q.Get("price_min"), "price_min"); err != nil {
		return nil, err
	}
	if req.Filters.PriceMax, err = parseFloatParam(q.Get("price_max"), "price_max"); err != nil {
		return nil, err
	}
	if req.Filters.RatingMin, err = parseFloatParam(q.Get("rating_min"), "rating_min"); err != nil {
		return nil, err
	}

	return &req, nil
}

func parseFloatParam(val, name string) (*float64, error) {
	if val == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, val)
	}
	return &f, nil
}
