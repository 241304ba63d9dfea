// Package config holds fakehttp configuration and declarative fixtures.
//
// Config controls scope defaults (the response returned when no setup
// matches, logging). It can be built in code, read from YAML, and overridden
// from FAKEHTTP_* environment variables.
//
// Fixtures are setups written as YAML so a suite can share them:
//
//	- name: list orders
//	  match:
//	    method: GET
//	    url: "*/orders*"
//	    query:
//	      status: [open, closed]
//	  respond:
//	    status: 200
//	    json: []
//
// A file may contain a single fixture or a list. LoadFixtures expands glob
// patterns (including "**") with doublestar and returns fixtures in
// file-name order, then document order, which is the declaration order the
// dispatcher honours.
package config
