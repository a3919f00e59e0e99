package shop

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gachastore/internal/domain"
	"gachastore/internal/pkg/validator"
)

var phonePattern = regexp.MustCompile(`^[0-9\-\+\(\) ]+$`)

// Payload carries every caller-editable shop field. Pointer fields
// distinguish "not provided" from zero values on partial updates.
type Payload struct {
	Name              *string           `json:"name,omitempty"`
	ShopType          []string          `json:"shop_type,omitempty"`
	Description       *string           `json:"description,omitempty"`
	Phone             *string           `json:"phone,omitempty"`
	Latitude          *float64          `json:"latitude,omitempty"`
	Longitude         *float64          `json:"longitude,omitempty"`
	BusinessHours     map[string]any    `json:"business_hours,omitempty"`
	Is24Hours         *bool             `json:"is_24_hours,omitempty"`
	GachaMachineCount *int              `json:"gacha_machine_count,omitempty"`
	MainSeries        []string          `json:"main_series,omitempty"`
	Sido              *string           `json:"sido,omitempty"`
	Sigungu           *string           `json:"sigungu,omitempty"`
	JibunAddress      *string           `json:"jibun_address,omitempty"`
	RoadAddress       *string           `json:"road_address,omitempty"`
	DetailAddress     *string           `json:"detail_address,omitempty"`
	ZoneCode          *string           `json:"zone_code,omitempty"`
	BuildingName      *string           `json:"building_name,omitempty"`
	SocialURLs        map[string]string `json:"social_urls,omitempty"`
	TagIDs            []string          `json:"tag_ids,omitempty"`
}

// ParsePayload decodes a generic map into a Payload. Submissions store
// their proposed data as JSON, so this is the bridge back into typed
// validation.
func ParsePayload(data map[string]any) (*Payload, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ValidateNew checks a payload that must describe a complete shop.
func ValidateNew(p *Payload) []validator.FieldError {
	var errs []validator.FieldError

	if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
		errs = append(errs, validator.FieldError{Field: "name", Message: "is required"})
	}
	if p.Sido == nil || strings.TrimSpace(*p.Sido) == "" {
		errs = append(errs, validator.FieldError{Field: "sido", Message: "is required"})
	}
	if p.RoadAddress == nil || strings.TrimSpace(*p.RoadAddress) == "" {
		errs = append(errs, validator.FieldError{Field: "road_address", Message: "is required"})
	}
	if len(p.ShopType) == 0 {
		errs = append(errs, validator.FieldError{Field: "shop_type", Message: "is required"})
	}

	return append(errs, validateProvided(p)...)
}

// ValidateUpdate checks only the fields the payload actually carries.
func ValidateUpdate(p *Payload) []validator.FieldError {
	var errs []validator.FieldError

	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		errs = append(errs, validator.FieldError{Field: "name", Message: "must not be empty"})
	}
	if p.Sido != nil && strings.TrimSpace(*p.Sido) == "" {
		errs = append(errs, validator.FieldError{Field: "sido", Message: "must not be empty"})
	}
	if p.RoadAddress != nil && strings.TrimSpace(*p.RoadAddress) == "" {
		errs = append(errs, validator.FieldError{Field: "road_address", Message: "must not be empty"})
	}

	return append(errs, validateProvided(p)...)
}

func validateProvided(p *Payload) []validator.FieldError {
	var errs []validator.FieldError

	if p.Name != nil && len([]rune(*p.Name)) > domain.MaxShopNameLength {
		errs = append(errs, validator.FieldError{
			Field:   "name",
			Message: fmt.Sprintf("must be at most %d characters", domain.MaxShopNameLength),
		})
	}

	for _, st := range p.ShopType {
		if !isValidShopType(st) {
			errs = append(errs, validator.FieldError{
				Field:   "shop_type",
				Message: fmt.Sprintf("%q is not a valid shop type", st),
			})
		}
	}

	// coordinates travel as a pair
	if (p.Latitude == nil) != (p.Longitude == nil) {
		errs = append(errs, validator.FieldError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}
	if p.Latitude != nil && (*p.Latitude < domain.MinLatitude || *p.Latitude > domain.MaxLatitude) {
		errs = append(errs, validator.FieldError{
			Field:   "latitude",
			Message: fmt.Sprintf("must be between %.0f and %.0f", domain.MinLatitude, domain.MaxLatitude),
		})
	}
	if p.Longitude != nil && (*p.Longitude < domain.MinLongitude || *p.Longitude > domain.MaxLongitude) {
		errs = append(errs, validator.FieldError{
			Field:   "longitude",
			Message: fmt.Sprintf("must be between %.0f and %.0f", domain.MinLongitude, domain.MaxLongitude),
		})
	}

	if p.GachaMachineCount != nil && (*p.GachaMachineCount < 0 || *p.GachaMachineCount > domain.MaxGachaMachineCount) {
		errs = append(errs, validator.FieldError{
			Field:   "gacha_machine_count",
			Message: fmt.Sprintf("must be between 0 and %d", domain.MaxGachaMachineCount),
		})
	}

	if p.Phone != nil && *p.Phone != "" && !phonePattern.MatchString(*p.Phone) {
		errs = append(errs, validator.FieldError{
			Field:   "phone",
			Message: "may only contain digits, spaces and - + ( )",
		})
	}

	return errs
}

func isValidShopType(t string) bool {
	for _, v := range domain.ValidShopTypes {
		if t == v {
			return true
		}
	}
	return false
}
