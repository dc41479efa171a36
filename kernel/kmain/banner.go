package kmain

import (
	"github.com/Duchemil/Kfs-1/device/tty"
	"github.com/Duchemil/Kfs-1/device/video/console"
)

// logo is drawn line by line in light brown on brown.
var logo = [...]string{
	"____________/\\\\\\_______/\\\\\\\\\\\\\\\\\\_____        \n",
	" __________/\\\\\\\\\\_____/\\\\\\///////\\\\\\___       \n",
	"  ________/\\\\\\/\\\\\\____\\///______\\//\\\\\\__      \n",
	"   ______/\\\\\\/\\/\\\\\\______________/\\\\\\/___     \n",
	"    ____/\\\\\\/__\\/\\\\\\___________/\\\\\\//_____    \n",
	"     __/\\\\\\\\\\\\\\\\\\\\\\\\\\\\\\\\_____/\\\\\\//________   \n",
	"      _\\///////////\\\\\\//____/\\\\\\/___________  \n",
	"       ___________\\/\\\\\\_____/\\\\\\\\\\\\\\\\\\\\\\\\\\\\\\_ \n",
	"        Made by Llaigle and Lduchemi          \n",
}

const greeting = "It's yo boi CarlOS!\n"

// printBanner writes the boot banner to vt. The greeting leaves the terminal
// in white on black.
func printBanner(vt *tty.VT) {
	for _, line := range logo {
		vt.WriteStringColor(line, console.LightBrown, console.Brown)
	}

	vt.WriteStringColor(greeting, console.White, console.Black)
}
