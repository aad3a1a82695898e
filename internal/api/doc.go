// Package api handles incoming HTTP requests, request decoding and response
// formatting. It acts as an adapter between API clients and the services,
// translating service errors into status codes and the JSON envelopes each
// endpoint has always returned: a status/msg envelope for register, login
// and the admin user writes, and a data/message envelope for everything else.
package api
