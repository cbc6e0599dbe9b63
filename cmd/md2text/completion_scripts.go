package main

import (
	"fmt"
	"io"
	"strings"
)

// commandNames returns the names of all commands in registry order.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// uniqueFlags returns all flags across commands, deduplicated by long name.
// Shared flags (config, quiet, verbose) appear once.
func uniqueFlags(cmds []commandDef) []flagDef {
	seen := make(map[string]bool)
	var flags []flagDef
	for _, c := range cmds {
		for _, f := range c.Flags {
			if seen[f.Long] {
				continue
			}
			seen[f.Long] = true
			flags = append(flags, f)
		}
	}
	return flags
}

// flagWords renders "--long" and "-s" tokens for a word list.
func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

// globExtensions pulls the extension list out of a comma-separated glob
// like "*.yaml,*.yml".
func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		g = strings.TrimSpace(g)
		if strings.HasPrefix(g, "*.") {
			exts = append(exts, strings.TrimPrefix(g, "*."))
		}
	}
	return exts
}

func bashGlob(glob string) string {
	exts := globExtensions(glob)
	if len(exts) == 0 {
		return "*"
	}
	return "*.@(" + strings.Join(exts, "|") + ")"
}

func zshGlob(glob string) string {
	exts := globExtensions(glob)
	if len(exts) == 0 {
		return "*"
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

// bashFlagPattern renders a case pattern matching a flag's long and short forms.
func bashFlagPattern(f flagDef) string {
	if f.Short != "" {
		return fmt.Sprintf("--%s|-%s", f.Long, f.Short)
	}
	return "--" + f.Long
}

// generateBash writes a bash completion script.
func generateBash(w io.Writer) error {
	cmds := getCommands()

	var b strings.Builder
	b.WriteString("# bash completion for md2text\n\n")
	b.WriteString("_md2text_completions() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	fmt.Fprintf(&b, "    local commands=\"%s\"\n\n", strings.Join(commandNames(cmds), " "))

	// First word: a command name or a markdown file.
	b.WriteString("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"$commands\" -- \"$cur\") )\n")
	b.WriteString("        COMPREPLY+=( $(compgen -f -X '!*.@(md|markdown)' -- \"$cur\") )\n")
	b.WriteString("        COMPREPLY+=( $(compgen -d -- \"$cur\") )\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	// Value completion for the flag preceding the cursor.
	b.WriteString("    case \"$prev\" in\n")
	for _, f := range uniqueFlags(cmds) {
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(&b, "    %s)\n", bashFlagPattern(f))
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(f.Values, " "))
			b.WriteString("        return ;;\n")
		case flagFile:
			fmt.Fprintf(&b, "    %s)\n", bashFlagPattern(f))
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -f -X '!%s' -- \"$cur\") )\n", bashGlob(f.FileGlob))
			b.WriteString("        return ;;\n")
		case flagDir:
			fmt.Fprintf(&b, "    %s)\n", bashFlagPattern(f))
			b.WriteString("        COMPREPLY=( $(compgen -f -- \"$cur\") )\n")
			b.WriteString("        return ;;\n")
		}
	}
	b.WriteString("    esac\n\n")

	// Per-command flag and argument completion.
	b.WriteString("    local cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		if c.Name == "completion" {
			b.WriteString("    completion)\n")
			b.WriteString("        COMPREPLY=( $(compgen -W \"bash zsh fish powershell\" -- \"$cur\") )\n")
			b.WriteString("        ;;\n")
			continue
		}
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(flagWords(c.Flags), " "))
		if c.TakesFiles {
			b.WriteString("        else\n")
			b.WriteString("            COMPREPLY=( $(compgen -f -X '!*.@(md|markdown)' -- \"$cur\") )\n")
			b.WriteString("            COMPREPLY+=( $(compgen -d -- \"$cur\") )\n")
		}
		b.WriteString("        fi\n")
		b.WriteString("        ;;\n")
	}
	b.WriteString("    *)\n")
	b.WriteString("        COMPREPLY=( $(compgen -f -X '!*.@(md|markdown)' -- \"$cur\") )\n")
	b.WriteString("        ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _md2text_completions md2text\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape makes a description safe inside an _arguments spec.
// Colons separate spec fields, so literal colons need escaping.
func zshEscape(s string) string {
	s = strings.ReplaceAll(s, `'`, `'\''`)
	return strings.ReplaceAll(s, ":", `\:`)
}

// zshSpec renders a single _arguments spec for a flag.
func zshSpec(f flagDef) string {
	desc := zshEscape(f.Desc)

	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = fmt.Sprintf(":value:(%s)", strings.Join(f.Values, " "))
	case flagFile:
		action = fmt.Sprintf(`:file:_files -g "%s"`, zshGlob(f.FileGlob))
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":value:"
	}

	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
	}
	return fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action)
}

// generateZsh writes a zsh completion script.
func generateZsh(w io.Writer) error {
	cmds := getCommands()

	var b strings.Builder
	b.WriteString("#compdef md2text\n")
	b.WriteString("# zsh completion for md2text\n\n")
	b.WriteString("_md2text() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")

	b.WriteString("    _arguments -C \\\n")
	b.WriteString("        '1: :->command' \\\n")
	b.WriteString("        '*:: :->args'\n\n")

	b.WriteString("    case $state in\n")
	b.WriteString("    command)\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        _files -g '*.(md|markdown)'\n")
	b.WriteString("        ;;\n")
	b.WriteString("    args)\n")
	b.WriteString("        case $words[1] in\n")
	for _, c := range cmds {
		if c.Name == "completion" {
			b.WriteString("        completion)\n")
			b.WriteString("            _arguments '1:shell:(bash zsh fish powershell)'\n")
			b.WriteString("            ;;\n")
			continue
		}
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            _arguments \\\n")
		specs := make([]string, 0, len(c.Flags)+1)
		for _, f := range c.Flags {
			specs = append(specs, zshSpec(f))
		}
		if c.TakesFiles {
			specs = append(specs, `'*:markdown file:_files -g "*.(md|markdown)"'`)
		}
		for i, s := range specs {
			if i < len(specs)-1 {
				fmt.Fprintf(&b, "                %s \\\n", s)
			} else {
				fmt.Fprintf(&b, "                %s\n", s)
			}
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("        esac\n")
	b.WriteString("        ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_md2text \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// fishEscape makes a description safe inside single quotes in fish.
func fishEscape(s string) string {
	return strings.ReplaceAll(s, `'`, `\'`)
}

// generateFish writes a fish completion script.
func generateFish(w io.Writer) error {
	cmds := getCommands()

	var b strings.Builder
	b.WriteString("# fish completion for md2text\n\n")
	b.WriteString("function __fish_md2text_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_md2text_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c md2text -n __fish_md2text_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		if c.Name == "completion" {
			b.WriteString("complete -c md2text -n '__fish_md2text_using_command completion' -xa 'bash zsh fish powershell'\n")
			continue
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c md2text -n '__fish_md2text_using_command %s' -l %s", c.Name, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += fmt.Sprintf(" -d '%s'", fishEscape(f.Desc))
			switch f.Type {
			case flagBool:
				// no argument
			case flagEnum:
				line += fmt.Sprintf(" -xa '%s'", strings.Join(f.Values, " "))
			default:
				line += " -r"
			}
			b.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// psEscape makes a description safe inside single quotes in PowerShell.
func psEscape(s string) string {
	return strings.ReplaceAll(s, `'`, `''`)
}

// generatePowerShell writes a PowerShell completion script.
func generatePowerShell(w io.Writer) error {
	cmds := getCommands()

	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = "'" + c.Name + "'"
	}

	var b strings.Builder
	b.WriteString("# powershell completion for md2text\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName md2text -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $tokens = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    $command = if ($tokens.Count -gt 1) { $tokens[1] } else { '' }\n\n")
	b.WriteString("    $completions = @()\n")
	fmt.Fprintf(&b, "    if ($tokens.Count -le 2 -and $command -notin @(%s)) {\n", strings.Join(names, ", "))
	b.WriteString("        $completions = @(\n")
	for i, c := range cmds {
		sep := ","
		if i == len(cmds)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "            [System.Management.Automation.CompletionResult]::new('%s', '%s', 'ParameterValue', '%s')%s\n",
			c.Name, c.Name, psEscape(c.Desc), sep)
	}
	b.WriteString("        )\n")
	b.WriteString("    } else {\n")
	b.WriteString("        switch ($command) {\n")
	for _, c := range cmds {
		if c.Name == "completion" {
			b.WriteString("            'completion' {\n")
			b.WriteString("                $completions = @(\n")
			shells := []string{"bash", "zsh", "fish", "powershell"}
			for i, s := range shells {
				sep := ","
				if i == len(shells)-1 {
					sep = ""
				}
				fmt.Fprintf(&b, "                    [System.Management.Automation.CompletionResult]::new('%s', '%s', 'ParameterValue', '%s completion script')%s\n", s, s, s, sep)
			}
			b.WriteString("                )\n")
			b.WriteString("            }\n")
			continue
		}
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "            '%s' {\n", c.Name)
		b.WriteString("                $completions = @(\n")
		for i, f := range c.Flags {
			sep := ","
			if i == len(c.Flags)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "                    [System.Management.Automation.CompletionResult]::new('--%s', '--%s', 'ParameterName', '%s')%s\n",
				f.Long, f.Long, psEscape(f.Desc), sep)
		}
		b.WriteString("                )\n")
		b.WriteString("            }\n")
	}
	b.WriteString("        }\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $completions | Where-Object { $_.CompletionText -like \"$wordToComplete*\" }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
