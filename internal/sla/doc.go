// Package sla holds the pure building blocks of the SLA report:
// cell cleanup, timestamp and target-date parsing, order classification
// and percentage rounding.
//
// Every function in this package is a pure function of its inputs. The
// orchestration of these functions into a report lives in the pipeline and
// engine packages.
//
// # Rules
//
// An order placed before the cutoff hour (15:00 by default) is "Quick" and
// must be delivered by 23:59:59 the same day; any later order is "Non Quick"
// and must be delivered by 23:59:59 the next day. Completion exactly at the
// deadline meets the SLA; only a strictly later completion is a breach.
package sla
