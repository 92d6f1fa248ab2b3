// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import (
	"encoding/hex"

	"github.com/cnf/structhash"
)

// Fingerprint returns a hash of the chip structure: its name, wires and
// instructions. Source positions are ignored, so that the same chip parsed
// from different places has the same fingerprint.
//
func (c *Chip) Fingerprint() string {
	return hex.EncodeToString(structhash.Sha1(c, 1))
}
