// Package httpapp serves the forum's HTTP API.
//
//	@title			Threadhouse API
//	@version		1.0
//	@description	Discussion forum API: topics hold posts, posts hold comments.
//	@description	Reads are open to everyone; writes require a registered account,
//	@description	and editing or deleting a record is restricted to its author.
//
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the token obtained from /auth/login/.
package httpapp
