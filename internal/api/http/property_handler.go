package http

import (
	"net/http"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/service"
)

type propertyRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	RentalType    string   `json:"rental_type" validate:"required,oneof=short_term long_term"`
	PricePerNight *float64 `json:"price_per_night"`
	PricePerMonth *float64 `json:"price_per_month"`
	MaxGuests     int32    `json:"max_guests" validate:"gte=0"`
	Bedrooms      int32    `json:"bedrooms" validate:"gte=0"`
	Bathrooms     int32    `json:"bathrooms" validate:"gte=0"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
}

type propertyPatchRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Address       *string  `json:"address"`
	City          *string  `json:"city"`
	Country       *string  `json:"country"`
	RentalType    *string  `json:"rental_type" validate:"omitempty,oneof=short_term long_term"`
	PricePerNight *float64 `json:"price_per_night"`
	PricePerMonth *float64 `json:"price_per_month"`
	MaxGuests     *int32   `json:"max_guests" validate:"omitempty,gte=0"`
	Bedrooms      *int32   `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms     *int32   `json:"bathrooms" validate:"omitempty,gte=0"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
}

func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p := &domain.Property{
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		RentalType:    domain.RentalType(req.RentalType),
		PricePerNight: req.PricePerNight,
		PricePerMonth: req.PricePerMonth,
		MaxGuests:     req.MaxGuests,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Amenities:     req.Amenities,
		Images:        req.Images,
	}
	if err := h.svc.Properties.Create(r.Context(), authFrom(r), p); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "property created", "property", p)
}

func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.PropertyFilter{
		City:       q.Get("city"),
		RentalType: domain.RentalType(q.Get("rental_type")),
	}
	if filter.RentalType != "" && filter.RentalType != domain.RentalTypeShortTerm && filter.RentalType != domain.RentalTypeLongTerm {
		writeError(w, r, domain.NewValidationError("", "rental_type must be short_term or long_term"))
		return
	}
	properties, err := h.svc.Properties.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *Handler) ListMyProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.svc.Properties.ListMine(r.Context(), authFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.svc.Properties.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req propertyPatchRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	patch := service.PropertyPatch{
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		PricePerNight: req.PricePerNight,
		PricePerMonth: req.PricePerMonth,
		MaxGuests:     req.MaxGuests,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Amenities:     req.Amenities,
		Images:        req.Images,
	}
	if req.RentalType != nil {
		rt := domain.RentalType(*req.RentalType)
		patch.RentalType = &rt
	}
	p, err := h.svc.Properties.Update(r.Context(), authFrom(r), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "property updated", "property", p)
}

func (h *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Properties.Delete(r.Context(), authFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "property deleted", "", nil)
}
