// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// for the gateway and the user service.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. Config file (JSON, or YAML when the name ends in .yaml/.yml)
//
// Fields left empty by every source receive the package defaults. Each process
// then validates the sections it needs via [StructuredConfig.ValidateGateway]
// or [StructuredConfig.ValidateUserService].
package config
