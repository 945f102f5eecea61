// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optbind binds command-line arguments to the fields of a struct.
//
// Options are registered one field at a time, each with a short and/or long
// flag, a description, optionality, an optional default and an optional
// translator:
//
//	type Options struct {
//		Path    string
//		Loggers []string
//		Help    bool
//	}
//
//	p := optbind.New[Options](optbind.WithMessages("My Console Tool"))
//	s, _ := p.Set("Path")
//	s.AsOptional("Output directory", "-p", "--path", optbind.Default("/tmp"))
//	s, _ = p.Set("Loggers")
//	s.AsRequired("Loggers to enable", "-l", "--loggers",
//		optbind.Translate(translators.Split(",")))
//	s, _ = p.Set("Help", optbind.AsHelp())
//	s.AsOptional("Show help", "-?", "--help")
//
//	res := p.Parse(os.Args[1:])
//	if res.HasErrors() { ... }
//
// A flag's value is the argument that follows it. Each option is resolved
// independently: a failure is recorded in the ParseResult and the remaining
// options are still processed. When a help option's flag is present, no
// option is resolved and the result carries no target.
//
// Values are converted by DefaultTranslator unless a custom Translator is
// configured with Translate or TranslateFunc.
package optbind
