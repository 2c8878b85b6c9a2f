package cmd

import (
	"fmt"
	"io"
	"os"
)

type CompletionCmd struct {
	Shell string `arg:"" help:"Shell type: bash, zsh, or fish"`

	out io.Writer `kong:"-"`
}

func (c *CompletionCmd) Run() error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}

	var script string
	switch c.Shell {
	case "bash":
		script = bashCompletion
	case "zsh":
		script = zshCompletion
	case "fish":
		script = fishCompletion
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", c.Shell)
	}

	_, err := fmt.Fprint(out, script)
	return err
}

const bashCompletion = `# bash completion for fusion2scad

_fusion2scad_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main commands
    if [[ ${COMP_CWORD} -eq 1 ]]; then
        opts="convert inspect version completion"
        COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        return 0
    fi

    # Options for convert command
    if [[ ${COMP_WORDS[1]} == "convert" ]]; then
        case "${prev}" in
            -o|--output)
                COMPREPLY=( $(compgen -f -X '!*.scad' -- ${cur}) )
                return 0
                ;;
            -c|--config)
                COMPREPLY=( $(compgen -f -X '!*.@(yaml|yml)' -- ${cur}) )
                return 0
                ;;
            --debug)
                COMPREPLY=( $(compgen -f -X '!*.json' -- ${cur}) )
                return 0
                ;;
            --render)
                COMPREPLY=( $(compgen -f -X '!*.@(stl|3mf|off|amf)' -- ${cur}) )
                return 0
                ;;
            --policy)
                COMPREPLY=( $(compgen -W "overwrite max" -- ${cur}) )
                return 0
                ;;
            --layout)
                COMPREPLY=( $(compgen -W "flat cumulative" -- ${cur}) )
                return 0
                ;;
            *)
                if [[ ${cur} == -* ]]; then
                    opts="-o --output -c --config --debug --policy --layout --print --render --open -h --help"
                    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
                else
                    COMPREPLY=( $(compgen -f -X '!*.@(yaml|yml|json)' -- ${cur}) )
                fi
                return 0
                ;;
        esac
    fi

    # Options for inspect command
    if [[ ${COMP_WORDS[1]} == "inspect" ]]; then
        if [[ ${cur} == -* ]]; then
            opts="-c --config -h --help"
            COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        else
            COMPREPLY=( $(compgen -f -X '!*.@(yaml|yml|json)' -- ${cur}) )
        fi
        return 0
    fi

    # Options for completion command
    if [[ ${COMP_WORDS[1]} == "completion" ]]; then
        if [[ ${COMP_CWORD} -eq 2 ]]; then
            opts="bash zsh fish"
            COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        fi
        return 0
    fi
}

complete -F _fusion2scad_completions fusion2scad
`

const zshCompletion = `#compdef fusion2scad

_fusion2scad() {
    local -a commands
    commands=(
        'convert:Convert a design document into an OpenSCAD/BOSL2 script'
        'inspect:Inspect a design document and show its analyzed timeline'
        'version:Show version information'
        'completion:Generate shell completion script'
    )

    local -a convert_opts
    convert_opts=(
        '(-o --output)'{-o,--output}'[Output script path]:output file:_files -g "*.scad"'
        '(-c --config)'{-c,--config}'[Settings file]:settings file:_files -g "*.{yaml,yml}"'
        '--debug[Write the raw host values as JSON]:debug file:_files -g "*.json"'
        '--policy[How repeated modifiers combine]:policy:(overwrite max)'
        '--layout[Boolean block layout]:layout:(flat cumulative)'
        '--print[Print the generated script]'
        '--render[Render with OpenSCAD]:render file:_files -g "*.{stl,3mf,off,amf}"'
        '--open[Open the result file in the default application]'
        '(-h --help)'{-h,--help}'[Show help]'
        '1:design file:_files -g "*.{yaml,yml,json}"'
    )

    local -a inspect_opts
    inspect_opts=(
        '(-c --config)'{-c,--config}'[Settings file]:settings file:_files -g "*.{yaml,yml}"'
        '(-h --help)'{-h,--help}'[Show help]'
        '1:design file:_files -g "*.{yaml,yml,json}"'
    )

    local -a completion_shells
    completion_shells=(
        'bash:Generate bash completion'
        'zsh:Generate zsh completion'
        'fish:Generate fish completion'
    )

    _arguments -C \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                convert)
                    _arguments $convert_opts
                    ;;
                inspect)
                    _arguments $inspect_opts
                    ;;
                completion)
                    _describe 'shell' completion_shells
                    ;;
                version)
                    _arguments '(-h --help)'{-h,--help}'[Show help]'
                    ;;
            esac
            ;;
    esac
}

_fusion2scad
`

const fishCompletion = `# fish completion for fusion2scad

# Main commands
complete -c fusion2scad -f -n "__fish_use_subcommand" -a "convert" -d "Convert a design document into an OpenSCAD/BOSL2 script"
complete -c fusion2scad -f -n "__fish_use_subcommand" -a "inspect" -d "Inspect a design document and show its analyzed timeline"
complete -c fusion2scad -f -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c fusion2scad -f -n "__fish_use_subcommand" -a "completion" -d "Generate shell completion script"

# convert command options
complete -c fusion2scad -f -n "__fish_seen_subcommand_from convert" -s o -l output -d "Output script path" -r -a "(__fish_complete_suffix .scad)"
complete -c fusion2scad -f -n "__fish_seen_subcommand_from convert" -s c -l config -d "Settings file" -r -a "(__fish_complete_suffix .yaml)"
complete -c fusion2scad -f -n "__fish_seen_subcommand_from convert" -l debug -d "Write the raw host values as JSON" -r -a "(__fish_complete_suffix .json)"
complete -c fusion2scad -f -n "__fish_seen_subcommand_from convert" -l policy -d "How repeated modifiers combine" -r -a "overwrite max"
complete -c fusion2scad -f -n "__fish_seen_subcommand_from convert" -l layout -d "Boolean block layout" -r -a "flat cumulative"
complete -c fusion2scad -f -n "__fish_seen_subcommand_from convert" -l print -d "Print the generated script"
complete -c fusion2scad -f -n "__fish_seen_subcommand_from convert" -l render -d "Render with OpenSCAD" -r -a "(__fish_complete_suffix .stl)"
complete -c fusion2scad -f -n "__fish_seen_subcommand_from convert" -l open -d "Open the result file in the default application"
complete -c fusion2scad -f -n "__fish_seen_subcommand_from convert" -s h -l help -d "Show help"
complete -c fusion2scad -n "__fish_seen_subcommand_from convert" -a "(__fish_complete_suffix .yaml)" -d "Design document"
complete -c fusion2scad -n "__fish_seen_subcommand_from convert" -a "(__fish_complete_suffix .json)" -d "Design document"

# inspect command options
complete -c fusion2scad -f -n "__fish_seen_subcommand_from inspect" -s c -l config -d "Settings file" -r -a "(__fish_complete_suffix .yaml)"
complete -c fusion2scad -f -n "__fish_seen_subcommand_from inspect" -s h -l help -d "Show help"
complete -c fusion2scad -n "__fish_seen_subcommand_from inspect" -a "(__fish_complete_suffix .yaml)" -d "Design document"

# completion command options
complete -c fusion2scad -f -n "__fish_seen_subcommand_from completion" -a "bash" -d "Generate bash completion"
complete -c fusion2scad -f -n "__fish_seen_subcommand_from completion" -a "zsh" -d "Generate zsh completion"
complete -c fusion2scad -f -n "__fish_seen_subcommand_from completion" -a "fish" -d "Generate fish completion"

# version command options
complete -c fusion2scad -f -n "__fish_seen_subcommand_from version" -s h -l help -d "Show help"
`

func (c *CompletionCmd) Help() string {
	return `
Generate shell completion scripts for fusion2scad.

Examples:
  # Bash
  fusion2scad completion bash > ~/.local/share/bash-completion/completions/fusion2scad

  # Zsh
  fusion2scad completion zsh > ~/.zsh/completion/_fusion2scad
  # or add to .zshrc:
  autoload -U compinit && compinit

  # Fish
  fusion2scad completion fish > ~/.config/fish/completions/fusion2scad.fish
`
}
