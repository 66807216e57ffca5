package handlers

import (
	"strconv"
	"strings"

	"github.com/BruksfildServices01/bank-booking-portal/internal/calendar"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
)

func parseDateParam(raw string) (calendar.Date, error) {
	d, err := calendar.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return calendar.Date{}, httperr.ErrBusiness(httperr.CodeInvalidDate)
	}
	return d, nil
}

func parseTimeParam(raw string) (calendar.TimeOfDay, error) {
	t, err := calendar.ParseTimeOfDay(raw)
	if err != nil {
		return calendar.NoTime, httperr.ErrBusiness(httperr.CodeInvalidTime)
	}
	return t, nil
}

// pageParams reads page/limit with the defaults used by paged listings.
func pageParams(pageStr, limitStr string) (int, int) {
	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return page, limit
}
