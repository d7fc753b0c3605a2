/*
Package authsdk provides a client SDK for the gatekeeper authentication service.

# Overview

Client wraps the public endpoints: registration, login, the demo resources
and the health probes. Login returns a bearer token which is passed to the
authenticated calls explicitly; the SDK keeps no session state, matching the
stateless server.

	client := authsdk.NewClient("http://localhost:8080")

	if err := client.Register(ctx, "bob", "correct-horse"); err != nil {
		// authsdk.IsStatus(err, http.StatusConflict) when the name is taken
	}

	login, err := client.Login(ctx, "bob", "correct-horse")
	me, err := client.Me(ctx, login.Token)

# Errors

Every non-2xx response is returned as *APIError carrying the HTTP status and
the server's error code. The same type is used by the server to write its
responses, so both sides agree on the envelope:

	{"error": "invalid_token", "error_description": "token verification failed"}
*/
package authsdk
