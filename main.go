// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/LiberTech01/facefusion-libero/cmd/pinokio-setup"

func main() {
	cmd.Execute()
}
