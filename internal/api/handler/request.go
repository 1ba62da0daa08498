package handler

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"github.com/vfg2006/campaign-insights-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errInvalidParam marca erros de leitura dos parâmetros da URL
var errInvalidParam = errors.New("parâmetro inválido")

type paramError struct {
	Field string
	Value string
	Err   error
}

func (e *paramError) Error() string {
	return fmt.Sprintf("%s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *paramError) Unwrap() error {
	return errInvalidParam
}

// parseAggregationRequest monta a requisição do pipeline a partir da query string.
// Datas são YYYY-MM-DD interpretadas no fuso do parâmetro tz (UTC por padrão).
func parseAggregationRequest(query url.Values) (domain.AggregationRequest, error) {
	req := domain.AggregationRequest{
		Granularity:   domain.Granularity(strings.ToLower(query.Get("granularity"))),
		ViewMode:      domain.ViewMode(strings.ToLower(query.Get("view_mode"))),
		ChannelFilter: domain.Channel(strings.ToLower(query.Get("channel"))),
		TagFilter:     query.Get("tag"),
		SearchQuery:   query.Get("q"),
		SortColumn:    query.Get("sort"),
		SortDirection: domain.SortDirection(strings.ToLower(query.Get("direction"))),
		Location:      time.UTC,
	}

	if tz := query.Get("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return req, &paramError{Field: "tz", Value: tz, Err: err}
		}
		req.Location = loc
	}

	mainRange, err := parseRange(query, "start_date", "end_date", req.Location)
	if err != nil {
		return req, err
	}
	if mainRange != nil {
		req.DateRange = *mainRange
	}

	req.ComparisonDateRange, err = parseRange(query, "comparison_start_date", "comparison_end_date", req.Location)
	if err != nil {
		return req, err
	}

	if ids := query.Get("account_ids"); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.AccountIDs = append(req.AccountIDs, id)
			}
		}
	}

	if value := query.Get("min_recipients"); value != "" {
		minRecipients, err := strconv.ParseInt(value, 10, 64)
		if err != nil || minRecipients < 0 {
			return req, &paramError{Field: "min_recipients", Value: value, Err: errors.New("esperado inteiro não negativo")}
		}
		req.MinVolumeThreshold = minRecipients
	}

	if value := query.Get("bottom"); value != "" {
		bottom, err := strconv.ParseBool(value)
		if err != nil {
			return req, &paramError{Field: "bottom", Value: value, Err: err}
		}
		req.BottomPerformers = bottom
	}

	req.SelectedFormula = domain.FormulaID(strings.ToLower(query.Get("formula")))

	return req, nil
}

// parseRange lê um par de datas. Os dois ausentes resultam em nil; só um deles é erro.
func parseRange(query url.Values, startKey, endKey string, loc *time.Location) (*domain.DateRange, error) {
	startValue, endValue := query.Get(startKey), query.Get(endKey)
	if startValue == "" && endValue == "" {
		return nil, nil
	}
	if startValue == "" {
		return nil, &paramError{Field: startKey, Value: startValue, Err: fmt.Errorf("obrigatório quando %s é informado", endKey)}
	}
	if endValue == "" {
		return nil, &paramError{Field: endKey, Value: endValue, Err: fmt.Errorf("obrigatório quando %s é informado", startKey)}
	}

	start, err := utils.ParseDateInLocation(startValue, loc)
	if err != nil {
		return nil, &paramError{Field: startKey, Value: startValue, Err: err}
	}
	end, err := utils.ParseDateInLocation(endValue, loc)
	if err != nil {
		return nil, &paramError{Field: endKey, Value: endValue, Err: err}
	}

	return &domain.DateRange{Start: start, End: end}, nil
}
