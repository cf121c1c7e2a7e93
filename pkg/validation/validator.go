package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hexcrawl/c3net/pkg/c3"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxUnitIDLength  = 64
	MaxColorLength   = 32
	MaxMembers       = 64
	MaxPeers         = 64

	// unitIDPattern: no ':' — it is the member-string separator
	unitIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	colorPattern  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

func init() {
	validate = validator.New()
}

// NetworkRecord is the persisted shape of one network group, as nested inside
// a force's saved state. Exactly one of the peer or master variants is set.
type NetworkRecord struct {
	ID    string `json:"id" yaml:"id" validate:"required,max=64"`
	Type  string `json:"type" yaml:"type" validate:"required,oneof=c3 c3i naval nova"`
	Color string `json:"color" yaml:"color" validate:"required,max=32"`

	// PeerNetwork variant
	PeerIDs []string `json:"peerIds,omitempty" yaml:"peerIds,omitempty" validate:"omitempty,min=2,max=64,dive,max=64"`

	// MasterNetwork variant; member strings are bare unit ids (slaves) or
	// "{unitId}:{compIndex}" (sub-masters)
	MasterID        string   `json:"masterId,omitempty" yaml:"masterId,omitempty" validate:"omitempty,max=64"`
	MasterCompIndex *int     `json:"masterCompIndex,omitempty" yaml:"masterCompIndex,omitempty"`
	Members         []string `json:"members,omitempty" yaml:"members,omitempty" validate:"omitempty,max=64,dive,max=80"`
}

// IsPeer reports whether the record is the peer-mesh variant.
func (r *NetworkRecord) IsPeer() bool {
	return len(r.PeerIDs) > 0
}

// ValidateNetworkRecord validates one persisted network record.
func ValidateNetworkRecord(rec *NetworkRecord) error {
	if rec == nil {
		return errors.New("network record cannot be nil")
	}
	if err := validate.Struct(rec); err != nil {
		return formatValidationError(err)
	}
	if _, ok := c3.ClassFromWireName(rec.Type); !ok {
		return fmt.Errorf("Type: unknown network type %q", rec.Type)
	}
	if !colorPattern.MatchString(rec.Color) {
		return fmt.Errorf("Color: %q is not a hex color", rec.Color)
	}

	peer := len(rec.PeerIDs) > 0
	master := rec.MasterID != ""
	if peer == master {
		return errors.New("record must be exactly one of peer or master variant")
	}

	if peer {
		if len(rec.Members) > 0 || rec.MasterCompIndex != nil {
			return errors.New("peer record carries master fields")
		}
		for _, id := range rec.PeerIDs {
			if err := ValidateUnitID(id); err != nil {
				return fmt.Errorf("PeerIDs: %w", err)
			}
		}
		return nil
	}

	if err := ValidateUnitID(rec.MasterID); err != nil {
		return fmt.Errorf("MasterID: %w", err)
	}
	if rec.MasterCompIndex == nil || *rec.MasterCompIndex < 0 {
		return errors.New("MasterCompIndex: required non-negative index")
	}
	for _, m := range rec.Members {
		unitID := m
		if idx := strings.LastIndex(m, ":"); idx >= 0 {
			unitID = m[:idx]
		}
		if err := ValidateUnitID(unitID); err != nil {
			return fmt.Errorf("Members: %w", err)
		}
	}
	return nil
}

// ConnectRequest is a request to link two component pins.
type ConnectRequest struct {
	SourceUnit      string `json:"sourceUnit" validate:"required,max=64"`
	SourceComponent int    `json:"sourceComponent" validate:"min=0"`
	TargetUnit      string `json:"targetUnit" validate:"required,max=64"`
	TargetComponent int    `json:"targetComponent" validate:"min=0"`
}

// ValidateConnectRequest validates a connect request.
func ValidateConnectRequest(req *ConnectRequest) error {
	if req == nil {
		return errors.New("connect request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if err := ValidateUnitID(req.SourceUnit); err != nil {
		return fmt.Errorf("SourceUnit: %w", err)
	}
	if err := ValidateUnitID(req.TargetUnit); err != nil {
		return fmt.Errorf("TargetUnit: %w", err)
	}
	return nil
}

// ValidateUnitID checks a unit id against the id grammar.
func ValidateUnitID(id string) error {
	if id == "" {
		return errors.New("unit id cannot be empty")
	}
	if len(id) > MaxUnitIDLength {
		return fmt.Errorf("unit id exceeds maximum length of %d characters", MaxUnitIDLength)
	}
	if !unitIDPattern.MatchString(id) {
		return fmt.Errorf("unit id %q contains invalid characters (alphanumeric, '_', '.', '-' allowed)", id)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return fmt.Errorf("%s: failed %q validation", first.Field(), first.Tag())
	}
	return err
}
