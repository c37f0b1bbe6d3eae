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

package calendar_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/quantward/qw-api/calendar"
)

var _ = Describe("Calendar", func() {
	Describe("Date", func() {
		It("truncates to midnight UTC", func() {
			t := time.Date(2022, 1, 4, 15, 30, 45, 12, calendar.Timezone(calendar.NYC))
			day := calendar.Date(t)
			Expect(day).To(Equal(time.Date(2022, 1, 4, 0, 0, 0, 0, time.UTC)))
		})
	})

	Describe("Timezone", func() {
		It("returns the zone for a known calendar", func() {
			Expect(calendar.Timezone(calendar.NYC).String()).To(Equal("America/New_York"))
			Expect(calendar.Timezone(calendar.HKG).String()).To(Equal("Asia/Hong_Kong"))
		})

		It("falls back to London for unknown calendars", func() {
			Expect(calendar.Timezone("XXX").String()).To(Equal("Europe/London"))
		})
	})

	Describe("Resolve", func() {
		BeforeEach(func() {
			calendar.ResetHolidays()
		})

		It("expands an interval into weekdays", func() {
			days, err := calendar.Resolve(
				time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC),
				time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC))
			Expect(err).To(BeNil())
			Expect(days).To(Equal([]time.Time{
				time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC),
				time.Date(2022, 1, 4, 0, 0, 0, 0, time.UTC),
				time.Date(2022, 1, 5, 0, 0, 0, 0, time.UTC),
				time.Date(2022, 1, 6, 0, 0, 0, 0, time.UTC),
				time.Date(2022, 1, 7, 0, 0, 0, 0, time.UTC),
				time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
			}))
		})

		It("returns an empty sequence for a weekend-only interval", func() {
			days, err := calendar.Resolve(
				time.Date(2022, 1, 8, 0, 0, 0, 0, time.UTC),
				time.Date(2022, 1, 9, 0, 0, 0, 0, time.UTC))
			Expect(err).To(BeNil())
			Expect(days).To(BeEmpty())
		})

		It("rejects an interval with begin after end", func() {
			_, err := calendar.Resolve(
				time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
				time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC))
			Expect(err).To(MatchError(calendar.ErrBeginAfterEnd))
		})

		It("rejects unknown calendar names", func() {
			_, err := calendar.Resolve(
				time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC),
				time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
				"MARS")
			Expect(err).To(MatchError(calendar.ErrUnknownCalendar))
		})
	})
})
