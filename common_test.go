// Copyright (c) 2025 the dynamic-meta authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-meta library.

package dynmeta

// Shared fixture types for the dynmeta tests.

type Address struct {
	City string
	Zip  string
}

type Customer struct {
	Name    string
	Address *Address
	Tags    map[string]string
}

type Item struct {
	Name  string
	Count int
}

type Order struct {
	ID       int
	Customer *Customer
	Items    []Item
	Price    float64
	Quantity float64
}

// Account exposes its state through accessor methods only.
type Account struct {
	name    string
	active  bool
	balance int
}

func (a *Account) GetName() string { return a.name }

func (a *Account) SetName(name string) { a.name = name }

func (a *Account) IsActive() bool { return a.active }

func (a *Account) GetActive() bool { return a.active }

func (a *Account) SetActive(active bool) { a.active = active }

func (a *Account) GetBalance() int { return a.balance }

// Timestamps is embedded into records to test promoted field access.
type Timestamps struct {
	CreatedAt string
	UpdatedAt string
}

type Record struct {
	Timestamps
	Name string
}
