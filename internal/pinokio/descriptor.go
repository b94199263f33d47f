// SPDX-License-Identifier: MPL-2.0

package pinokio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Descriptor filenames recognized by the launcher.
const (
	FileApp     = "pinokio.js"
	FileInstall = "install.json"
	FileStart   = "start.json"
	FileSession = "session.json"
)

// SessionURL is the local endpoint the started application serves on.
const SessionURL = "http://127.0.0.1:7860"

// startMessage selects the venv interpreter path at launcher-evaluation
// time: the launcher substitutes the template per host, so the same file
// works on both OS families.
const startMessage = `env{{path.sep}}{{os.platform()==='win32'?'\\Scripts':'/bin'}}{{path.sep}}python facefusion.py run`

// appScript is the launcher menu module. The 3-way menu state (not
// installed / installed / running) is decided by the launcher's own
// capability API; this tool only ships the file.
const appScript = `// pinokio.js
module.exports = {
  version: "2.0",
  title: "FaceFusion Libero",
  description: "Plataforma de manipulación de rostros",
  icon: "icon.png",
  menu: async (kernel, info) => {
    const installed = await info.exists("env");
    const running   = await kernel.running(__dirname, "start.json");
    if (running) return [
      { icon:"fa-solid fa-spin fa-circle-notch", text:"Ejecutando" },
      { default:true, icon:"fa-solid fa-terminal", text:"Terminal", href:"start.json", params:{fullscreen:true} }
    ];
    if (installed) return [
      { default:true, icon:"fa-solid fa-power-off", text:"Iniciar", href:"start.json", params:{run:true, fullscreen:true} },
      { icon:"fa-solid fa-plug", text:"Reinstalar", href:"install.json" }
    ];
    return [
      { default:true, icon:"fa-solid fa-plug", text:"Instalar", href:"install.json", params:{run:true, fullscreen:true} }
    ];
  }
};
`

type (
	// Script is a launcher run script: an ordered list of steps.
	Script struct {
		Run []Step `json:"run"`
	}

	// Step is a single launcher action.
	Step struct {
		Method string `json:"method"`
		Params any    `json:"params"`
	}

	// NotifyParams shows a message with a follow-up link.
	NotifyParams struct {
		HTML string `json:"html"`
		Href string `json:"href"`
	}

	// ShellStartParams starts a long-running shell command.
	ShellStartParams struct {
		Message string `json:"message"`
	}

	// BrowserOpenParams opens a URL in the launcher's browser view.
	BrowserOpenParams struct {
		URL string `json:"url"`
	}

	// Session pins the URL behind the launcher's "Open WebUI" button.
	Session struct {
		URL string `json:"url"`
	}

	// File is a descriptor ready to be written.
	File struct {
		Name    string
		Content []byte
	}

	// Emitter writes the descriptor set into a repository root.
	Emitter struct {
		// Root is the directory the descriptors are written into.
		Root string
		// DryRun reports what would be written without touching the disk.
		DryRun bool
		// Logger receives one status line per file.
		Logger *log.Logger
	}
)

// InstallScript is the content of install.json: dependencies were installed
// by this tool already, so the launcher only notifies and links to start.
func InstallScript() Script {
	return Script{Run: []Step{{
		Method: "notify",
		Params: NotifyParams{
			HTML: "<b>Dependencias instaladas manualmente.</b> La aplicación está lista para iniciar.",
			Href: FileStart,
		},
	}}}
}

// StartScript is the content of start.json: launch the app from the venv,
// then open the browser on the served endpoint.
func StartScript() Script {
	return Script{Run: []Step{
		{Method: "shell.start", Params: ShellStartParams{Message: startMessage}},
		{Method: "browser.open", Params: BrowserOpenParams{URL: SessionURL}},
	}}
}

// Files returns the four descriptors in emission order.
func Files() ([]File, error) {
	installJSON, err := marshal(InstallScript())
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", FileInstall, err)
	}
	startJSON, err := marshal(StartScript())
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", FileStart, err)
	}
	sessionJSON, err := marshal(Session{URL: SessionURL})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", FileSession, err)
	}

	return []File{
		{Name: FileApp, Content: []byte(appScript)},
		{Name: FileInstall, Content: installJSON},
		{Name: FileStart, Content: startJSON},
		{Name: FileSession, Content: sessionJSON},
	}, nil
}

// WriteAll writes every descriptor that does not yet exist under the root.
// Pre-existing files are skipped with a log line and never overwritten.
func (e *Emitter) WriteAll() error {
	files, err := Files()
	if err != nil {
		return err
	}

	for _, f := range files {
		path := filepath.Join(e.Root, f.Name)

		if _, err := os.Stat(path); err == nil {
			e.logf("descriptor already exists, skipping", f.Name)
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		if e.DryRun {
			e.logf("dry-run: would write descriptor", f.Name)
			continue
		}

		e.logf("writing descriptor", f.Name)
		if err := os.WriteFile(path, f.Content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

func (e *Emitter) logf(msg, name string) {
	if e.Logger != nil {
		e.Logger.Info(msg, "file", name)
	}
}

// marshal matches the launcher-side descriptor formatting: two-space
// indent, literal HTML in strings, no trailing newline.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
