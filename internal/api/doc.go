// Package api handles incoming HTTP requests, request validation and response
// formatting for the document generation endpoints. It translates HTTP
// concerns (multipart uploads, query parameters, download headers) into calls
// on the document service.
package api
