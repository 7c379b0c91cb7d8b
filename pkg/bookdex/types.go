/*
 * Copyright (c) 2011 jamra.source@gmail.com
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not
 * use this file except in compliance with the License. You may obtain a copy of
 * the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
 * WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
 * License for the specific language governing permissions and limitations under
 * the License.
 */

// Package bookdex is the public API for searching a compiled book index:
// open a file built by cmd/bookdex-build, then look up tokens by title or
// content across every shard it contains.
package bookdex

import "github.com/jamra/bookdex/internal/container"

// Channel selects which frequency field a search matches against.
type Channel = container.Channel

const (
	ChannelTitle   = container.ChannelTitle
	ChannelContent = container.ChannelContent
)
