/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package clock implements a software wall clock driven by a free-running millisecond counter.

It tracks day of week, hour, minute and second. The clock never reads the host time itself:
it polls a TickSource and applies at most one second per call to Advance, so the caller
must poll it at least once per real second.

Supported methods include
  - plain getters and setters for every field, which do not validate their input
  - Advance, which applies one second when more than 1000 ticks passed since the last mark
  - checked helpers, Validate and SetClock, for callers that want range checks
  - parity flags tracking every second and every third day

Each applied second is written to the configured output as a line such as

	Monday, 0:0:0

The day of week only rolls over from Sunday by default. RolloverDaily advances it every day.
*/
package clock
