// Package airline runs whole support conversations through the real model
// adapters: against a scripted local endpoint by default, and against a live
// provider when FLIGHTDESK_TEST_OPENAI_KEY is set.
package airline
