// Package model defines the database models for the SWAPI collections.
//
// Every collection model embeds Document, which carries the store-assigned
// id, the opaque created/edited/url display strings and the store-managed
// timestamps. Relationship fields are ordered lists of string references
// stored as PostgreSQL text[] columns.
//
// # Tables
//
//   - characters: people (route /people)
//   - species
//   - planets
//   - films
//   - starships
//   - vehicles
//   - users: accounts with bcrypt password hashes
//
// Each model exposes APIRepr, the fixed public representation returned by
// the read endpoints.
package model
