// Package poster publishes posts through the social platform's v2 API.
//
// The Poster marshals the post text, has the injected auth.Authorizer sign or
// bear-token the request, and decodes the created post from the response.
// Non-success statuses surface as *PostingError so the scheduling loop can log
// them without stopping.
package poster
