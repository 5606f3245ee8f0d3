// Package diagram defines the declarative diagram document and its decoding.
//
// A [Document] is an ordered list of elements (boxes with rich content) and
// relations (directed edges between element ids). Documents are read from
// YAML or JSON:
//
//	elements:
//	  - id: user
//	    type: person
//	    title: Customer
//	  - id: db
//	    type: database
//	    group: Storage
//	relations:
//	  - from: user
//	    to: db
//	    label: reads
//
// Decoding never mutates a document afterwards; every render pass treats it
// as read-only input.
package diagram
