/*
Package cash keeps the balances of the vault and of any address it has
paid out to, and implements the atomic transfer primitive the custody
engine builds on.
*/
package cash
