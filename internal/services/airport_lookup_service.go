package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"infinite-experiment/airportd/internal/common"
	"infinite-experiment/airportd/internal/constants"
	"infinite-experiment/airportd/internal/logging"
	"infinite-experiment/airportd/internal/metrics"
	"infinite-experiment/airportd/internal/models/dtos"
	gormModels "infinite-experiment/airportd/internal/models/gorm"

	"golang.org/x/sync/singleflight"
)

// ErrAirportNotFound is returned when no airport carries the code, or the airport's city does not resolve.
var ErrAirportNotFound = errors.New("airport not found")

// AirportFinder resolves an airport by normalized IATA code together with its city and country.
// It returns (nil, nil) when no airport matches.
type AirportFinder interface {
	FindByIATA(ctx context.Context, iata string) (*gormModels.Airport, error)
}

// AirportLookupService is the read path behind GET /airport/{iata_code}.
type AirportLookupService struct {
	finder   AirportFinder
	backend  string
	cache    common.CacheInterface
	cacheTTL time.Duration
	metrics  *metrics.MetricsRegistry
	group    singleflight.Group
}

// NewAirportLookupService wires a finder into the lookup service. backend labels metrics;
// cache and metricsReg may be nil.
func NewAirportLookupService(
	finder AirportFinder,
	backend string,
	cache common.CacheInterface,
	cacheTTL time.Duration,
	metricsReg *metrics.MetricsRegistry,
) *AirportLookupService {
	return &AirportLookupService{
		finder:   finder,
		backend:  backend,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  metricsReg,
	}
}

// FindAirportByIATACode normalizes code and returns the nested airport document,
// ErrAirportNotFound, or a wrapped store error.
func (s *AirportLookupService) FindAirportByIATACode(ctx context.Context, code string) (*dtos.AirportResponse, error) {
	iata := common.NormalizeCode(code)
	if iata == "" {
		s.countOutcome("not_found")
		return nil, ErrAirportNotFound
	}

	key := string(constants.CachePrefixAirport) + iata
	if resp, ok := s.fromCache(key); ok {
		s.countOutcome("found")
		return resp, nil
	}

	// Identical concurrent misses share one store round trip.
	val, err, _ := s.group.Do(iata, func() (interface{}, error) {
		return s.resolve(context.WithoutCancel(ctx), iata, key)
	})
	if err != nil {
		if errors.Is(err, ErrAirportNotFound) {
			s.countOutcome("not_found")
		} else {
			s.countOutcome("error")
		}
		return nil, err
	}

	s.countOutcome("found")
	return val.(*dtos.AirportResponse), nil
}

func (s *AirportLookupService) resolve(ctx context.Context, iata, key string) (*dtos.AirportResponse, error) {
	start := time.Now()
	airport, err := s.finder.FindByIATA(ctx, iata)
	if s.metrics != nil {
		s.metrics.LookupDuration.WithLabelValues(s.backend).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", iata, err)
	}

	// Airport→City is required, City→Country is optional.
	if airport == nil || airport.City == nil {
		return nil, ErrAirportNotFound
	}

	resp := ToAirportResponse(airport)
	s.toCache(key, resp)
	return resp, nil
}

func (s *AirportLookupService) fromCache(key string) (*dtos.AirportResponse, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, found := s.cache.Get(key)
	if found {
		var resp dtos.AirportResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			s.countCache(true)
			return &resp, true
		}
		logging.Warn("Discarding unreadable cache entry", "key", key)
	}

	s.countCache(false)
	return nil, false
}

func (s *AirportLookupService) toCache(key string, resp *dtos.AirportResponse) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		logging.Warn("Failed to encode airport for cache", "key", key, "error", err.Error())
		return
	}
	s.cache.Set(key, data, s.cacheTTL)
}

func (s *AirportLookupService) countOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.LookupsTotal.WithLabelValues(s.backend, outcome).Inc()
	}
}

func (s *AirportLookupService) countCache(hit bool) {
	if s.metrics == nil {
		return
	}
	pattern := string(constants.CachePrefixAirport) + "*"
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues(pattern).Inc()
	} else {
		s.metrics.CacheMissesTotal.WithLabelValues(pattern).Inc()
	}
}

// ToAirportResponse shapes an airport with a resolved city into the response document.
// A nil country is kept as an explicit null.
func ToAirportResponse(airport *gormModels.Airport) *dtos.AirportResponse {
	city := airport.City

	address := dtos.AirportAddress{
		City: dtos.CityDetail{
			ID:        city.ID,
			Name:      city.Name,
			CountryID: city.CountryID,
			IsActive:  city.IsActive,
			Lat:       city.Lat,
			Long:      city.Long,
		},
	}

	if country := city.Country; country != nil {
		address.Country = &dtos.CountryDetail{
			ID:               country.ID,
			Name:             country.Name,
			CountryCodeTwo:   country.CountryCodeTwo,
			CountryCodeThree: country.CountryCodeThree,
			MobileCode:       country.MobileCode,
			ContinentID:      country.ContinentID,
		}
	}

	return &dtos.AirportResponse{
		Airport: dtos.AirportDetail{
			ID:           airport.ID,
			ICAOCode:     airport.ICAOCode,
			IATACode:     airport.IATACode,
			Name:         airport.Name,
			Type:         airport.Type,
			LatitudeDeg:  airport.LatitudeDeg,
			LongitudeDeg: airport.LongitudeDeg,
			ElevationFt:  airport.ElevationFt,
			Address:      address,
		},
	}
}
