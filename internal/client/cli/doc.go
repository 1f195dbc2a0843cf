// Package cli provides the interactive SAM terminal.
//
// It wires configuration, the local session store, the backend gateway,
// the image cache and the services, then runs a REPL. A stored session is
// resumed on start; otherwise the user logs in or registers first.
//
// Commands:
//   - login / admin / register / logout
//   - status, map, inventory, memories
//   - chat <text>, recall <memory id>
//   - domains, locations, characters, upload <path> (admin session)
//   - cache: image cache statistics
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
