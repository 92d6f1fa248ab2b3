// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package loader builds linked chip libraries from source files.
//
// A source file holds any number of chip units. Loading several files into
// the same library is allowed as long as a chip defined in more than one
// place has the exact same definition everywhere.
//
package loader

import (
	"io/ioutil"

	"github.com/db47h/chipsim"
	"github.com/db47h/chipsim/lexer"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
)

// tracer traces with key 'chipsim.loader'.
func tracer() tracing.Trace {
	return tracing.Select("chipsim.loader")
}

// Load parses every chip of src and returns the linked library.
//
func Load(unit string, src []byte) (chipsim.Library, error) {
	lib := make(chipsim.Library)
	if err := Add(lib, unit, src); err != nil {
		return nil, err
	}
	if err := lib.Link(); err != nil {
		return nil, err
	}
	return lib, nil
}

// LoadFiles loads the given files into a single library and links it.
//
func LoadFiles(paths ...string) (chipsim.Library, error) {
	return LoadFilesInto(make(chipsim.Library), paths...)
}

// LoadFilesInto adds the chips from the given files to lib, then links it.
// lib is left unchanged if an error occurs.
//
func LoadFilesInto(lib chipsim.Library, paths ...string) (chipsim.Library, error) {
	tmp := make(chipsim.Library, len(lib))
	for n, c := range lib {
		tmp[n] = c
	}
	for _, p := range paths {
		src, err := ioutil.ReadFile(p)
		if err != nil {
			return nil, errors.Wrap(err, "load "+p)
		}
		if err = Add(tmp, p, src); err != nil {
			return nil, err
		}
	}
	if err := tmp.Link(); err != nil {
		return nil, err
	}
	for n, c := range tmp {
		lib[n] = c
	}
	return lib, nil
}

// Add parses the chips in src and adds them to lib without linking it. A chip
// already in lib is silently skipped if the new definition is identical.
//
func Add(lib chipsim.Library, unit string, src []byte) error {
	toks, err := lexer.Tokenize(unit, src)
	if err != nil {
		return err
	}
	chips, err := chipsim.ParseAll(chipsim.NewTokenStack(toks))
	if err != nil {
		return err
	}
	for _, c := range chips {
		if old, ok := lib[c.Name]; ok && old.Fingerprint() == c.Fingerprint() {
			tracer().Debugf("%s: skipping identical definition of %s", c.Pos, c.Name)
			continue
		}
		if err = lib.Add(c); err != nil {
			return err
		}
	}
	tracer().Infof("%s: %d chips", unit, len(chips))
	return nil
}
