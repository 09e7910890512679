/*
Package plex provides a client for the Plex Media Server APIs needed to monitor and control Plex players.

The Client reads the server's active sessions and connected clients, browses its libraries and playlists,
creates play queues, and sends remote-control commands to players, either directly or proxied through the server.

The Client authenticates with a fixed token. See [Finding an authentication token / X-Plex-Token].

[Finding an authentication token / X-Plex-Token]: https://support.plex.tv/articles/204059436-finding-an-authentication-token-x-plex-token/
*/
package plex
