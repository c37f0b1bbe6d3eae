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
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// Named holiday calendars; these double as market data locations
const (
	NYC = "NYC"
	LDN = "LDN"
	HKG = "HKG"
)

var (
	ErrUnknownCalendar = errors.New("unknown calendar")
	ErrBeginAfterEnd   = errors.New("invalid interval; begin after end date")
)

var calendarZones = map[string]string{
	NYC: "America/New_York",
	LDN: "Europe/London",
	HKG: "Asia/Hong_Kong",
}

// Timezone returns the timezone for a named calendar; unknown names fall
// back to London, the default market data location
func Timezone(calendarName string) *time.Location {
	zoneName, ok := calendarZones[calendarName]
	if !ok {
		zoneName = calendarZones[LDN]
	}
	tz, err := time.LoadLocation(zoneName)
	if err != nil {
		log.Panic().Err(err).Str("Timezone", zoneName).Msg("could not load timezone")
	}
	return tz
}

// Date truncates t to midnight UTC; all calendar arithmetic is done on
// normalized dates
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Resolve expands [start, end] into the ordered sequence of business days,
// skipping weekends and any holiday observed by one of the named calendars
func Resolve(start, end time.Time, calendars ...string) ([]time.Time, error) {
	for _, calendarName := range calendars {
		if _, ok := calendarZones[calendarName]; !ok {
			return nil, ErrUnknownCalendar
		}
	}

	begin := Date(start)
	until := Date(end)
	if until.Before(begin) {
		return nil, ErrBeginAfterEnd
	}

	days := make([]time.Time, 0, 252)
	for day := begin; !day.After(until); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if isObservedHoliday(day, calendars) {
			continue
		}
		days = append(days, day)
	}

	return days, nil
}

func isObservedHoliday(day time.Time, calendars []string) bool {
	for _, calendarName := range calendars {
		if IsHoliday(calendarName, day) {
			return true
		}
	}
	return false
}
