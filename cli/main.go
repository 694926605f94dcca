// Command leaguerats queries the League Rats backend from a terminal.
package main

import "leaguerats/cli/cmd"

func main() {
	cmd.Execute()
}
