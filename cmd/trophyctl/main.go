// Command trophyctl decodes trophy progress files and maintains a profile.
package main

func main() {
	execute()
}
