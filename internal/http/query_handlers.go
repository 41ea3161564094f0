package http

import (
	"net/http"

	"visit-analytics/internal/models"
	"visit-analytics/internal/queries"
)

// CountResponseItem is one day of GET /services/{service}/count.
// Count holds unique visitors for field=ip and visits otherwise.
type CountResponseItem struct {
	Date  models.Day `json:"date"`
	Count int64      `json:"count"`
}

type AverageResponseItem struct {
	Date models.Day `json:"date"`
	Avg  *float64   `json:"avg"`
}

type ServicesResponse struct {
	Services []string `json:"services"`
}

type countHandler struct {
	queryService queries.QueryService
}

func NewCountHandler(queryService queries.QueryService) AppHttpHandler {
	return &countHandler{queryService: queryService}
}

// Handle processes GET /services/{service}/count?field=&start=&stop= requests.
func (h *countHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	dr, err := queries.NewDateRange(dateRangeParams(r))
	if err != nil {
		return err
	}

	field := queryParam(r, queryField)
	points, err := h.queryService.Count(r.Context(), serviceParam(r), field, dr)
	if err != nil {
		return err
	}

	unique := field != ""
	items := make([]CountResponseItem, 0, len(points))
	for _, p := range points {
		count := p.Visits
		if unique {
			count = p.Unique
		}
		items = append(items, CountResponseItem{Date: p.Date, Count: count})
	}

	writeJSON(w, http.StatusOK, items)
	return nil
}

type averageHandler struct {
	queryService queries.QueryService
}

func NewAverageHandler(queryService queries.QueryService) AppHttpHandler {
	return &averageHandler{queryService: queryService}
}

// Handle processes GET /services/{service}/average?field=generation_time&start=&stop= requests.
func (h *averageHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	dr, err := queries.NewDateRange(dateRangeParams(r))
	if err != nil {
		return err
	}

	points, err := h.queryService.Average(r.Context(), serviceParam(r), queryParam(r, queryField), dr)
	if err != nil {
		return err
	}

	items := make([]AverageResponseItem, 0, len(points))
	for _, p := range points {
		items = append(items, AverageResponseItem{Date: p.Date, Avg: p.Avg})
	}

	writeJSON(w, http.StatusOK, items)
	return nil
}

type groupByHandler struct {
	queryService queries.QueryService
}

func NewGroupByHandler(queryService queries.QueryService) AppHttpHandler {
	return &groupByHandler{queryService: queryService}
}

// Handle processes GET /services/{service}/groupby?field=path&limit=&start=&stop= requests.
func (h *groupByHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	dr, err := queries.NewDateRange(dateRangeParams(r))
	if err != nil {
		return err
	}
	limit, err := queries.ParseLimit(queryParam(r, queryLimit))
	if err != nil {
		return err
	}

	points, err := h.queryService.GroupBy(r.Context(), serviceParam(r), queryParam(r, queryField), limit, dr)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, points)
	return nil
}

type dashboardHandler struct {
	queryService queries.QueryService
}

func NewDashboardHandler(queryService queries.QueryService) AppHttpHandler {
	return &dashboardHandler{queryService: queryService}
}

// Handle processes GET /services/{service}/dashboard?limit=&start=&stop= requests.
func (h *dashboardHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	dr, err := queries.NewDateRange(dateRangeParams(r))
	if err != nil {
		return err
	}
	limit, err := queries.ParseLimit(queryParam(r, queryLimit))
	if err != nil {
		return err
	}

	dashboard, err := h.queryService.Dashboard(r.Context(), serviceParam(r), limit, dr)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, dashboard)
	return nil
}

type servicesHandler struct {
	queryService queries.QueryService
}

func NewServicesHandler(queryService queries.QueryService) AppHttpHandler {
	return &servicesHandler{queryService: queryService}
}

// Handle processes GET /services requests.
func (h *servicesHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	services, err := h.queryService.Services(r.Context())
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, ServicesResponse{Services: services})
	return nil
}
