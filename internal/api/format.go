// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package api

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/tomtom215/ojakgyo/internal/models"
	"github.com/tomtom215/ojakgyo/internal/recommend"
)

// invalidPrice is shown for values that are not whole won amounts.
const invalidPrice = "금액 오류"

// FormatPrice renders a won amount the way prices are shown to users:
// 12000 is "1만2천원", 30000 "3만원", 5000 "5천원" and 800 "800원".
// Values that cannot be read as an integer render as "금액 오류".
func FormatPrice(price any) string {
	if price == nil {
		return invalidPrice
	}
	n, err := cast.ToInt64E(price)
	if err != nil {
		return invalidPrice
	}

	switch {
	case n >= 10000:
		man, chun := n/10000, (n%10000)/1000
		if chun > 0 {
			return fmt.Sprintf("%d만%d천원", man, chun)
		}
		return fmt.Sprintf("%d만원", man)
	case n >= 1000:
		return fmt.Sprintf("%d천원", n/1000)
	default:
		return fmt.Sprintf("%d원", n)
	}
}

// budgetDisplay describes the price range a course was built for.
func budgetDisplay(b recommend.Budget) string {
	if b.Explicit() {
		return FormatPrice(*b.Min) + " ~ " + FormatPrice(*b.Max)
	}
	return models.BucketLabel(b.Range)
}
