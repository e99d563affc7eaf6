package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/wonny/pmanalytics/internal/dashboard"
	"github.com/wonny/pmanalytics/internal/funds"
	"github.com/wonny/pmanalytics/pkg/logger"
)

// FundsHandler serves the filterable fund table
type FundsHandler struct {
	snap   *dashboard.Snapshot
	logger *logger.Logger
}

// NewFundsHandler creates a new funds handler
func NewFundsHandler(snap *dashboard.Snapshot, log *logger.Logger) *FundsHandler {
	return &FundsHandler{
		snap:   snap,
		logger: log,
	}
}

// ListFunds returns one page of funds matching the query
// GET /api/funds?strategy=&vintage=&geography=&min_size=&max_size=&min_confidence=&q=&page=&page_size=
func (h *FundsHandler) ListFunds(w http.ResponseWriter, r *http.Request) {
	filter, page, err := parseFundsQuery(r.URL.Query())
	if err != nil {
		h.logger.WithError(err).Debug("Invalid funds query")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.snap.List(filter, page))
}

// GetFund returns a single fund
// GET /api/funds/{id}
func (h *FundsHandler) GetFund(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	fund, ok := h.snap.Fund(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Fund not found")
		return
	}

	respondJSON(w, http.StatusOK, fund.View())
}

// parseFundsQuery converts query parameters into a filter and page.
// Missing parameters leave the constraint unset.
func parseFundsQuery(q url.Values) (funds.Filter, funds.Page, error) {
	filter := funds.Filter{
		Strategy:  q.Get("strategy"),
		Geography: q.Get("geography"),
		Query:     q.Get("q"),
	}
	page := funds.Page{Number: 1, Size: funds.DefaultPageSize}

	if v := q.Get("vintage"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return filter, page, errors.New("Invalid vintage")
		}
		filter.VintageYear = year
	}

	if v := q.Get("min_confidence"); v != "" {
		c, err := strconv.ParseFloat(v, 64)
		if err != nil || c < 0 || c > 1 {
			return filter, page, errors.New("Invalid min_confidence (must be 0.0 ~ 1.0)")
		}
		filter.MinConfidence = c
	}

	for _, p := range []struct {
		key string
		dst *decimal.NullDecimal
	}{
		{"min_size", &filter.MinSize},
		{"max_size", &filter.MaxSize},
	} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			return filter, page, fmt.Errorf("Invalid %s", p.key)
		}
		*p.dst = decimal.NewNullDecimal(d)
	}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return filter, page, errors.New("Invalid page (must be >= 1)")
		}
		page.Number = n
	}

	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > funds.MaxPageSize {
			return filter, page, fmt.Errorf("Invalid page_size (must be 1 ~ %d)", funds.MaxPageSize)
		}
		page.Size = n
	}

	return filter, page, nil
}
