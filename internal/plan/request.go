// Package plan parses move requests and assembles the combined move plan.
package plan

import (
	"fmt"
	"strconv"

	"github.com/whatsthemove/moveplan/internal/common"
	"github.com/whatsthemove/moveplan/internal/model"
)

// ParseRequest validates the raw route segments and decodes the flag
// strings once into a MoveRequest. The 2-character segment carries the
// U-Haul and moving-service bits; the 6-character segment carries, left to
// right: have-arrangements, drive-own-car, moving-truck, rental-car,
// train-bus, plane.
func ParseRequest(from, to, startMonth, endMonth, uhMvFlags, transportFlags, maxCost string) (*model.MoveRequest, error) {
	if err := validateBits(uhMvFlags, 2); err != nil {
		return nil, fmt.Errorf("uhaul/moving flags: %w", err)
	}
	if err := validateBits(transportFlags, 6); err != nil {
		return nil, fmt.Errorf("transport flags: %w", err)
	}

	cost, err := strconv.Atoi(maxCost)
	if err != nil {
		return nil, fmt.Errorf("%w: apartment max cost must be an integer, got %q",
			common.ErrInvalidRequest, maxCost)
	}

	return &model.MoveRequest{
		FromSlug:   from,
		ToSlug:     to,
		StartMonth: startMonth,
		EndMonth:   endMonth,

		UseUHaul:       uhMvFlags[0] == '1',
		NeedMovingHelp: uhMvFlags[1] == '1',

		NoTransportNeeded: transportFlags[0] == '1',
		UseOwnCar:         transportFlags[1] == '1',
		UseMovingTruck:    transportFlags[2] == '1',
		NeedRentalCar:     transportFlags[3] == '1',
		UseBus:            transportFlags[4] == '1',
		UsePlane:          transportFlags[5] == '1',

		RawUHaulFlags:     uhMvFlags,
		RawTransportFlags: transportFlags,

		MaxHousingCost: cost,
	}, nil
}

func validateBits(flags string, length int) error {
	if len(flags) != length {
		return fmt.Errorf("%w: must be a %d-character 0/1 string, got %q",
			common.ErrInvalidRequest, length, flags)
	}
	for _, r := range flags {
		if r != '0' && r != '1' {
			return fmt.Errorf("%w: must contain only 0 or 1, got %q",
				common.ErrInvalidRequest, flags)
		}
	}
	return nil
}
