// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned when the control API has no handler or
// no listen address.
var errNoServersAreCreated = errors.New("no servers are created")
