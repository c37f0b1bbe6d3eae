// Copyright 2025-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/quantward/qw-api/database"
	"github.com/rs/zerolog/log"
)

var (
	holidayMu       sync.RWMutex
	holidays        = map[string]map[int][]time.Time{}
	lastHolidayLoad time.Time
)

// IsHoliday returns true if the specified date is a holiday on the named
// calendar. An unloaded calendar observes no holidays; weekends are handled
// by Resolve.
func IsHoliday(calendarName string, t time.Time) bool {
	day := Date(t)

	holidayMu.RLock()
	defer holidayMu.RUnlock()

	byYear, ok := holidays[calendarName]
	if !ok {
		return false
	}
	for _, holiday := range byYear[day.Year()] {
		if day.Equal(holiday) {
			return true
		}
	}
	return false
}

// LoadHolidays retrieves market holidays from the database; loads are
// incremental after the first call
func LoadHolidays(ctx context.Context) error {
	trx, err := database.Trx(ctx)
	if err != nil {
		return err
	}

	var rows pgx.Rows

	holidayMu.Lock()
	defer holidayMu.Unlock()

	if lastHolidayLoad.IsZero() {
		rows, err = trx.Query(ctx, "SELECT calendar, event_date FROM market_holidays ORDER BY event_date ASC")
	} else {
		rows, err = trx.Query(ctx, "SELECT calendar, event_date FROM market_holidays WHERE event_date > $1 ORDER BY event_date ASC", lastHolidayLoad)
	}

	if err != nil {
		if err := trx.Rollback(ctx); err != nil {
			log.Error().Err(err).Msg("could not rollback transaction")
		}
		return err
	}

	for rows.Next() {
		var calendarName string
		var eventDate time.Time
		if err := rows.Scan(&calendarName, &eventDate); err != nil {
			if err := trx.Rollback(ctx); err != nil {
				log.Error().Err(err).Msg("could not rollback transaction")
			}
			return err
		}

		eventDate = Date(eventDate)
		lastHolidayLoad = eventDate

		byYear, ok := holidays[calendarName]
		if !ok {
			byYear = map[int][]time.Time{}
			holidays[calendarName] = byYear
		}
		byYear[eventDate.Year()] = append(byYear[eventDate.Year()], eventDate)
	}

	if err := trx.Commit(ctx); err != nil {
		log.Error().Err(err).Msg("could not commit transaction")
		return err
	}

	return nil
}

// resetHolidays clears loaded holiday state; used by tests
func resetHolidays() {
	holidayMu.Lock()
	holidays = map[string]map[int][]time.Time{}
	lastHolidayLoad = time.Time{}
	holidayMu.Unlock()
}
