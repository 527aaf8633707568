/*
Package covaulttest provides mocks and helpers for testing code built
on the covault packages: deterministic conditions and addresses, and
authenticator implementations that do not require a host.
*/
package covaulttest
