// Package lua runs style scripts for scene nodes.
//
// A scene names a Lua file and, per node, a global function in it. The
// function receives a table describing the node and returns a table of
// color strings:
//
//	function danger(node)
//	    if node.text == "Delete" then
//	        return { color = "white", background = "red" }
//	    end
//	    return { border = "brightRed" }
//	end
//
// Recognized keys are color, background and border. Missing keys, unknown
// colors and script errors all leave the node's static style in place.
//
// Scripts run in a restricted state: only the base, table, string and math
// libraries are opened and file loading is removed.
package lua
