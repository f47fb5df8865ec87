// Package api implements the Asset Tracker HTTP client.
//
// Every operation goes through a single request pipeline that attaches the
// stored access token as a bearer credential, and recovers from token expiry
// by exchanging the refresh token for a new pair and replaying the request
// exactly once. Concurrent expiries share one refresh exchange, since the
// server invalidates a refresh token on use.
package api
