//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/heliobs/magpie --repository.default-branch main --repository.path /

package magpie
