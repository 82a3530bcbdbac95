// Package lua runs user scripts against the editor.
//
// Scripts run in a sandboxed gopher-lua state: only the base, table,
// string and math libraries are opened, and the functions that load code
// from disk or strings are removed. Every call runs under a timeout.
//
// Install exposes the editor to scripts as the richtype module:
//
//	richtype.select(0, 5)     -- select characters [0, 5)
//	richtype.format("strong") -- toggle a format on the selection
//	richtype.log("done")      -- log through the editor logger
//
// A Filter plugs a script function into the input pipeline. The function
// receives the key event as a table and cancels it by returning true:
//
//	function on_key(ev)
//	  if ev.command and ev.key == "h" then
//	    richtype.format("h1")
//	    return true
//	  end
//	end
package lua
