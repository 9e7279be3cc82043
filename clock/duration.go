/*
 * tokenspec - The token contract test harness
 *
 * Copyright The tokenspec Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package clock

// Seconds per unit. A year is a fixed 365 days.
const (
	SecondsPerMinute uint64 = 60
	SecondsPerHour   uint64 = 3600
	SecondsPerDay    uint64 = 86400
	SecondsPerWeek   uint64 = 604800
	SecondsPerYear   uint64 = 31536000
)

func Seconds(n uint64) uint64 { return n }

func Minutes(n uint64) uint64 { return n * SecondsPerMinute }

func Hours(n uint64) uint64 { return n * SecondsPerHour }

func Days(n uint64) uint64 { return n * SecondsPerDay }

func Weeks(n uint64) uint64 { return n * SecondsPerWeek }

func Years(n uint64) uint64 { return n * SecondsPerYear }
